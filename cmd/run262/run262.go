// Command run262 runs the test262 ECMAScript conformance suite (its ES5.1
// subset) against the engine package in exact mode, reporting which cases
// parse and evaluate the way test262's own harness expects.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
	yaml "gopkg.in/yaml.v3"

	"github.com/tidev/titanium-code-processor"
	"github.com/tidev/titanium-code-processor/tsvalidate"
)

var (
	test262Root = flag.String("test262", "", "Path to the test262 respository")
	testCase    = flag.String("single", "", "Run this specific testcase (path relative to the test262 root)")
	showAST     = flag.Bool("showAST", false, "Show the AST of the main script")
	tsCheck     = flag.Bool("tsCheck", false, "Cross-validate each file against tree-sitter's grammar before running it")
	concurrency = flag.Int("concurrency", 8, "Number of test cases to run concurrently")

	ErrCaseDisabledInMetadata = errors.New("testcase disabled in metadata")
)

func main() {
	flag.Parse()

	if *test262Root == "" {
		log.Fatalf("command line argument is required: -test262 (see -help)")
	}

	if *testCase != "" {
		log.Println("running single test case:", *testCase)
		errStrict, errSloppy := runTestCase(*test262Root, *testCase)
		log.Println("strict:", errStrict)
		log.Println("sloppy:", errSloppy)
		return
	}

	testConfig, err := readTestConfig("testConfig.json")
	if err != nil {
		log.Fatalf("while parsing testConfig.json: %s", err)
	}

	result := runMany(*test262Root, testConfig.TestCases)

	var successes, failures []CaseOutcome
	for _, co := range result.Cases {
		if co.Success {
			successes = append(successes, co)
		} else {
			failures = append(failures, co)
		}
	}

	fmt.Printf("group SUCCESSES %d\n", len(successes))
	for _, co := range successes {
		fmt.Printf("case\t%s\t%s\n", co.Path, strictLabel(co.StrictMode))
	}

	fmt.Printf("group FAILURES %d\n", len(failures))
	for _, co := range failures {
		fmt.Printf("case\t%s\t%s\n", co.Path, strictLabel(co.StrictMode))
		var errLines []string
		if co.Error != nil {
			errLines = strings.Split(co.Error.Error(), "\n")
		}
		for ndx, line := range errLines {
			if ndx == 0 {
				fmt.Printf("error\t\t%s\n", line)
			} else {
				fmt.Printf("ectx\t\t%s\n", line)
			}
		}
	}

	fmt.Printf("summary\ttotal: %d; %d successes; %d failures\n", len(result.Cases), len(successes), len(failures))
}

func strictLabel(strict bool) string {
	if strict {
		return "strict"
	}
	return "sloppy"
}

type TestConfig struct {
	TestCases []string `json:"testCases"`
}

func readTestConfig(filename string) (cfg TestConfig, err error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	err = json.Unmarshal(buf, &cfg)
	return cfg, err
}

type RunManyResult struct {
	Cases []CaseOutcome
}

type CaseOutcome struct {
	Path       string
	StrictMode bool
	Success    bool
	Error      error
}

// runMany fans out over test262's case list with an errgroup; bounded
// concurrency via errgroup.SetLimit keeps file-descriptor and memory
// pressure flat regardless of how large testConfig.json's case list gets.
func runMany(test262Root string, testCases []string) RunManyResult {
	results := make([]CaseOutcome, len(testCases)*2)

	g := new(errgroup.Group)
	g.SetLimit(*concurrency)

	for i, relPath := range testCases {
		i, relPath := i, relPath
		g.Go(func() error {
			errStrict, errSloppy := runTestCase(test262Root, relPath)
			results[2*i] = CaseOutcome{
				Path:       relPath,
				StrictMode: true,
				Success:    errStrict == nil || errStrict == ErrCaseDisabledInMetadata,
				Error:      errStrict,
			}
			results[2*i+1] = CaseOutcome{
				Path:       relPath,
				StrictMode: false,
				Success:    errSloppy == nil || errSloppy == ErrCaseDisabledInMetadata,
				Error:      errSloppy,
			}
			return nil
		})
	}
	_ = g.Wait()

	return RunManyResult{Cases: results}
}

func runTestCase(test262Root, testCase string) (errStrict, errSloppy error) {
	testCaseAbs := testCase
	if !path.IsAbs(testCase) {
		testCaseAbs = path.Join(test262Root, testCase)
	}

	textBytes, err := os.ReadFile(testCaseAbs)
	if err != nil {
		log.Fatalf("reading testcase %s: %v", testCaseAbs, err)
	}

	if *showAST {
		if err := engine.DumpAST(os.Stdout, bytes.NewReader(textBytes), testCaseAbs); err != nil {
			log.Fatalf("parsing and printing AST: %v", err)
		}
	}
	if *tsCheck {
		if diags, err := tsvalidate.Validate(context.Background(), textBytes); err == nil && len(diags) > 0 {
			log.Printf("%s: tree-sitter disagrees with otto's grammar at %v", testCaseAbs, diags[0])
		}
	}

	mt, err := parseMetadata(textBytes)
	if err != nil {
		errStrict = fmt.Errorf("while parsing metadata: %w", err)
		errSloppy = errStrict
		return errStrict, errSloppy
	}

	runInMode := func(forceStrict bool) error {
		log.Printf("running %s (strict: %v)", testCase, forceStrict)

		eng := engine.NewEngine(engine.Config{ExactMode: true, StrictGlobal: forceStrict}, nil)

		paths := []string{
			path.Join(test262Root, "harness/sta.js"),
			path.Join(test262Root, "harness/assert.js"),
		}
		paths = append(paths, mt.Includes...)
		paths = append(paths, testCaseAbs)

		var lastErr error
		for i, p := range paths {
			var buf *bytes.Buffer
			if i == len(paths)-1 && forceStrict {
				buf = bytes.NewBufferString("\"use strict\";\n")
				buf.Write(textBytes)
			} else if i == len(paths)-1 {
				buf = bytes.NewBuffer(textBytes)
			} else {
				buf = new(bytes.Buffer)
				f, err := os.Open(p)
				if err != nil {
					return err
				}
				_, err = io.Copy(buf, f)
				f.Close()
				if err != nil {
					return err
				}
			}

			_, runErr := eng.Run(buf, p)
			lastErr = runErr

			if mt.NegativePhase != "" && i == len(paths)-1 {
				if runErr == nil {
					lastErr = fmt.Errorf("expected %s error in phase %s, but none were raised", mt.NegativeType, mt.NegativePhase)
				} else {
					lastErr = nil
				}
			}
			if lastErr != nil {
				return lastErr
			}
		}
		return nil
	}

	if mt.NoStrict {
		errStrict = ErrCaseDisabledInMetadata
	} else {
		errStrict = runInMode(true)
	}
	if mt.OnlyStrict {
		errSloppy = ErrCaseDisabledInMetadata
	} else {
		errSloppy = runInMode(false)
	}

	return errStrict, errSloppy
}

type Metadata struct {
	OnlyStrict    bool
	NoStrict      bool
	Includes      []string
	NegativePhase string
	NegativeType  string
}

func parseMetadata(text []byte) (mt Metadata, err error) {
	startNdx := bytes.Index(text, []byte("/*---"))
	if startNdx == -1 {
		return mt, nil
	}
	endRel := bytes.Index(text[startNdx:], []byte("---*/"))
	if endRel == -1 {
		return mt, fmt.Errorf("invalid source code: unterminated metadata comment (started with /*--- at offset %d)", startNdx)
	}
	endNdx := startNdx + endRel

	metadataYaml := text[startNdx+5 : endNdx]

	var metadataRaw struct {
		Flags    []string
		Includes []string
		Negative *struct {
			Phase string
			Type  string
		}
	}
	if err := yaml.Unmarshal(metadataYaml, &metadataRaw); err != nil {
		return mt, err
	}

	for _, flag := range metadataRaw.Flags {
		switch flag {
		case "noStrict":
			mt.NoStrict = true
		case "onlyStrict":
			mt.OnlyStrict = true
		}
	}
	mt.Includes = metadataRaw.Includes
	if metadataRaw.Negative != nil {
		mt.NegativePhase = metadataRaw.Negative.Phase
		mt.NegativeType = metadataRaw.Negative.Type
	}
	return mt, nil
}

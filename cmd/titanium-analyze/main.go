// Command titanium-analyze is the thin CLI harness around the engine
// package: it owns flag/config parsing, log-file rotation, and diagnostic
// report serialization, none of which the core engine has an opinion about.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/tidev/titanium-code-processor"
)

var (
	cfgFile        string
	logFile        string
	exactMode      bool
	maxCycles      int
	invokeMethods  bool
	nativeRecovery bool
	maxRecursion   int
	strictGlobal   bool
	dumpAST        bool
	outputReports  string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titanium-analyze [file]",
		Short: "Statically analyze an ES5.1 source file for Unknown-tainted behavior",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.titanium-analyze.yaml)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write rotated logs here instead of stderr")
	cmd.Flags().BoolVar(&exactMode, "exact", false, "disable Unknown production; panic if the analysis would need it")
	cmd.Flags().IntVar(&maxCycles, "max-cycles", 1<<20, "loop iteration budget per analysis run")
	cmd.Flags().BoolVar(&invokeMethods, "invoke-methods", true, "actually execute function bodies instead of substituting Unknown")
	cmd.Flags().BoolVar(&nativeRecovery, "native-exception-recovery", true, "turn a recoverable built-in exception into a diagnostic instead of aborting the run")
	cmd.Flags().IntVar(&maxRecursion, "max-recursion-limit", 0, "closure call-depth bound before aborting with RangeError (0 = unbounded)")
	cmd.Flags().BoolVar(&strictGlobal, "strict", false, "force strict mode regardless of a \"use strict\" prologue")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST instead of analyzing")
	cmd.Flags().StringVar(&outputReports, "output", "", "write diagnostic reports as JSON to this path (default stdout)")

	viper.BindPFlag("exact", cmd.Flags().Lookup("exact"))
	viper.BindPFlag("max-cycles", cmd.Flags().Lookup("max-cycles"))
	viper.BindPFlag("invoke-methods", cmd.Flags().Lookup("invoke-methods"))
	viper.BindPFlag("native-exception-recovery", cmd.Flags().Lookup("native-exception-recovery"))
	viper.BindPFlag("max-recursion-limit", cmd.Flags().Lookup("max-recursion-limit"))
	viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))

	cobra.OnInitialize(initConfig)
	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".titanium-analyze")
		}
	}
	viper.SetEnvPrefix("TITANIUM_ANALYZE")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if dumpAST {
		return engine.DumpAST(os.Stdout, f, path)
	}

	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := engine.Config{
		ExactMode:               viper.GetBool("exact"),
		MaxCycles:               viper.GetInt("max-cycles"),
		InvokeMethods:           viper.GetBool("invoke-methods"),
		NativeExceptionRecovery: viper.GetBool("native-exception-recovery"),
		MaxRecursionLimit:       viper.GetInt("max-recursion-limit"),
		StrictGlobal:            viper.GetBool("strict"),
		Blacklist:               loadBlacklist(),
	}
	eng := engine.NewEngine(cfg, logger)

	reports, runErr := eng.Run(f, path)

	out := os.Stdout
	if outputReports != "" {
		file, err := os.Create(outputReports)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputReports, err)
		}
		defer file.Close()
		out = file
	}
	encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	fmt.Fprintln(out, string(encoded))

	if runErr != nil {
		return fmt.Errorf("analysis of %s did not complete: %w", path, runErr)
	}
	return nil
}

// buildLogger wires zap to lumberjack's rotating writer when --log-file is
// set, so a long-running batch analysis gets rotated JSON logs instead of
// an ever-growing stderr stream.
func buildLogger() (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewProduction()
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20,
		MaxBackups: 5,
		MaxAge:     28,
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), writer, zap.InfoLevel)
	return zap.New(core), nil
}

// loadBlacklist reads a user-editable blacklist of fully-qualified native
// call names from $HOME/.titanium-analyze-blacklist.json, falling back to
// engine.DefaultBlacklist when absent or unreadable.
func loadBlacklist() map[string]bool {
	home, err := homedir.Dir()
	if err != nil {
		return engine.DefaultBlacklist()
	}
	data, err := os.ReadFile(filepath.Join(home, ".titanium-analyze-blacklist.json"))
	if err != nil {
		return engine.DefaultBlacklist()
	}
	var list map[string]bool
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &list); err != nil {
		return engine.DefaultBlacklist()
	}
	return list
}

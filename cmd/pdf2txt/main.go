package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schidstorm/pdf2txt/pkg/app"
	"github.com/schidstorm/pdf2txt/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	cmd := &cobra.Command{
		Use:   "pdf2txt",
		Short: "Convert PDF files to plain text, with OCR for scanned pages",
	}

	cmd.PersistentFlags().String("config", "", "Path to the configuration file (.yaml, .yml or .json)")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringSlice("env-file", []string{".env"}, "Dotenv files loaded before the configuration")

	convertCmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert PDF files into sibling .txt files",
		Args:  cobra.MinimumNArgs(1),
		Run:   helpInterceptor(runConvert),
	}
	convertCmd.Flags().Bool("ocr", false, "Run OCR on pages without a text layer")
	convertCmd.Flags().Bool("reveal", false, "Show the last written file in the file manager")

	watchCmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Convert every PDF dropped into a directory",
		Args:  cobra.ExactArgs(1),
		Run:   helpInterceptor(runWatch),
	}
	watchCmd.Flags().Bool("ocr", false, "Run OCR on pages without a text layer")
	watchCmd.Flags().Bool("existing", false, "Also convert PDFs already in the directory that have no .txt")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether OCR is available",
		Run:   helpInterceptor(runCheck),
	}

	infoCmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show page count and validation result of a PDF",
		Args:  cobra.ExactArgs(1),
		Run:   helpInterceptor(runInfo),
	}

	printConfigCmd := &cobra.Command{
		Use:   "print-config",
		Short: "Print the effective configuration",
		Run:   helpInterceptor(printConfig),
	}

	cmd.AddCommand(convertCmd, watchCmd, checkCmd, infoCmd, printConfigCmd)

	err := cmd.Execute()
	if err != nil {
		logrus.WithError(err).Error("Failed to execute command")
		os.Exit(1)
	}
}

func helpInterceptor(child func(cmd *cobra.Command, args []string)) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		printHelp := false

		for _, arg := range args {
			if arg == "--help" || arg == "-h" {
				printHelp = true
			}
		}

		if printHelp {
			cmd.Help()
			os.Exit(0)
		} else {
			child(cmd, args)
		}
	}
}

// loadOptions reads dotenv files and the config file, then configures
// logging. It exits the process on failure.
func loadOptions(cmd *cobra.Command) app.Options {
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	err := app.LoadEnv(envFiles...)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load env file")
	}

	configPath, _ := cmd.Flags().GetString("config")
	opts, err := app.LoadConfig(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse config")
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		opts.Log.Level = level
	}

	err = logger.Configure(opts.Log.Level, opts.Log.Json)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid log level")
	}

	return opts
}

func buildApp(opts app.Options) *app.App {
	a, err := app.New(opts)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize")
	}

	err = a.Start()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to start")
	}

	return a
}

func printConfig(cmd *cobra.Command, args []string) {
	opts := loadOptions(cmd)
	fmt.Println("JSON:")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	enc.Encode(opts)
	fmt.Println("YAML:")
	yaml.NewEncoder(os.Stdout).Encode(opts)
}

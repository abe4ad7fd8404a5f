package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Pipeline
	analysisMode string
	pagesRoot    string
	dryRun       bool

	// Remote service
	modelID    string
	baseURL    string
	delay      time.Duration
	jitter     time.Duration
	refererURL string
	clientName string

	// Scanner
	showHidden bool
	noIgnore   bool

	// Output
	outputFile      string
	pdfOutputFile   string
	copyToClipboard bool

	// Token counting
	disableTokens   bool
	tokenizerType   string
	tokenizerModel  string
	tokenizerFile   string
	maxPromptTokens int

	// Interactive mode
	interactiveMode bool

	markerConfig *MarkerConfig
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "pageops [PATH] [MODEL]",
	Short: "pageops maps GraphQL operations to the pages of a frontend codebase.",
	Long: `pageops scans a frontend codebase for files embedding GraphQL tagged
templates, groups them by page, and asks a remote model to summarize the
query and mutation operations each page uses. PATH may be a directory, a
text file (inventory mode), a git URL, or a web URL (inventory mode).`,
	Version: version,
	Args:    cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		// Determine the input path: interactive or first argument.
		var inputPath string
		if interactiveMode {
			selected, err := runInteractiveFinder()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Interactive mode error: %v\n", err)
				os.Exit(1)
			}
			if selected == "" {
				os.Exit(0) // user aborted
			}
			inputPath = selected
			fmt.Printf("Scanning interactively selected path: %s\n", inputPath)
		} else {
			if len(args) == 0 {
				_ = cmd.Usage()
				os.Exit(1)
			}
			inputPath = args[0]
		}
		if len(args) > 1 {
			modelID = args[1]
		}

		// --- Tokenizer (prompt size reporting) ---
		var tokenizer Tokenizer
		if !disableTokens {
			var err error
			tokenizer, err = getTokenizer()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing tokenizer: %v\n", err)
				disableTokens = true
				fmt.Fprintln(os.Stderr, "Token counting disabled due to error.")
			} else {
				defer tokenizer.Close()
			}
		}

		// --- Remote analysis client ---
		// The credential is read once here and injected; nothing else
		// touches the environment.
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" && !dryRun {
			fmt.Fprintln(os.Stderr, "Error: OPENROUTER_API_KEY is not set.")
			os.Exit(1)
		}
		client := NewAnalysisClient(ClientConfig{
			APIKey:  apiKey,
			Model:   modelID,
			BaseURL: baseURL,
			Referer: refererURL,
			Title:   clientName,
		})
		pacer := NewPacer(delay, jitter)
		runner := NewRunner(client, pacer, tokenizer, maxPromptTokens)

		fmt.Printf("pageops running (mode: %s, model: %s)...\n", analysisMode, modelID)

		ctx := context.Background()
		var document any
		var results []AnalysisResult
		var err error

		switch analysisMode {
		case "groups":
			results, err = runGroupsMode(ctx, runner, inputPath)
			document = results
		case "inventory":
			var pages []PageInfo
			pages, results, err = runInventoryMode(ctx, runner, inputPath)
			document = inventoryDocument{Pages: pages, Results: results}
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q (use groups or inventory)\n", analysisMode)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if dryRun {
			fmt.Println("Dry run, skipping output.")
			return
		}

		// --- Output ---
		writtenPath, err := writeResults(document, outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if pdfOutputFile != "" {
			if err := generatePDF(results, runner.Summary(), pdfOutputFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
			}
		}
		if copyToClipboard {
			copyResultsToClipboard(document)
		}
		printSummary(runner.Summary(), writtenPath, !disableTokens)
	},
}

// runGroupsMode scans a source tree (cloning first when PATH is a git URL),
// groups the matches by page, and analyzes one group at a time.
func runGroupsMode(ctx context.Context, runner *Runner, inputPath string) ([]AnalysisResult, error) {
	scanRoot := inputPath
	if isGitURL(inputPath) {
		tempDir, err := cloneGitRepo(inputPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			fmt.Printf("Cleaning up temporary directory: %s\n", tempDir)
			_ = os.RemoveAll(tempDir)
		}()
		scanRoot = tempDir
	}

	files, err := scanLocalPath(scanRoot, markerConfig)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Found %d files with query-language markers.\n", len(files))

	groups := groupByPage(files, filepath.Join(scanRoot, pagesRoot))
	fmt.Printf("Grouped into %d pages.\n", len(groups))

	if dryRun {
		for _, g := range groups {
			fmt.Printf("  %s: %d files\n", g.Name, len(g.Files))
		}
		return nil, nil
	}

	return runner.AnalyzeGroups(ctx, groups)
}

// runInventoryMode reads one text blob (file or fetched web page), asks for
// the page inventory, then analyzes each discovered page.
func runInventoryMode(ctx context.Context, runner *Runner, inputPath string) ([]PageInfo, []AnalysisResult, error) {
	var blob string
	var err error
	if isWebURL(inputPath) {
		blob, err = fetchPageBlob(inputPath)
	} else {
		var content []byte
		content, err = os.ReadFile(inputPath)
		blob = string(content)
	}
	if err != nil {
		return nil, nil, err
	}

	if dryRun {
		fmt.Printf("Read blob of %d bytes.\n", len(blob))
		return nil, nil, nil
	}

	return runner.AnalyzeInventory(ctx, blob)
}

func init() {
	cobra.OnInitialize(initConfig, initMarkers)

	// Pipeline
	rootCmd.Flags().StringVarP(&analysisMode, "mode", "m", "groups", "Analysis mode: groups or inventory")
	viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	rootCmd.Flags().StringVar(&pagesRoot, "pages-root", "src/pages", "Pages directory relative to the scan root")
	viper.BindPFlag("pages_root", rootCmd.Flags().Lookup("pages-root"))
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Scan and group without calling the remote service")
	viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))

	// Remote service
	rootCmd.Flags().StringVar(&modelID, "model", "openai/gpt-4o-mini", "Model identifier for the remote service")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Chat-completions endpoint (default OpenRouter)")
	viper.BindPFlag("base_url", rootCmd.Flags().Lookup("base-url"))
	rootCmd.Flags().DurationVar(&delay, "delay", 30*time.Second, "Fixed pause between consecutive remote calls")
	viper.BindPFlag("delay", rootCmd.Flags().Lookup("delay"))
	rootCmd.Flags().DurationVar(&jitter, "jitter", 0, "Random addition to each pause")
	viper.BindPFlag("jitter", rootCmd.Flags().Lookup("jitter"))

	// Scanner
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Scan hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect the root .gitignore file")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	// Output
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Output path (default: timestamped file in the working directory)")
	viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Also render a PDF report to this path")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the result JSON to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))

	// Token counting
	rootCmd.Flags().BoolVar(&disableTokens, "no-tokens", false, "Disable prompt token counting")
	viper.BindPFlag("no_tokens", rootCmd.Flags().Lookup("no-tokens"))
	rootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().StringVar(&tokenizerModel, "tokenizer-model", "", "Model name for the tokenizer (e.g., gpt-4o, gpt2)")
	viper.BindPFlag("tokenizer_model", rootCmd.Flags().Lookup("tokenizer-model"))
	rootCmd.Flags().StringVar(&tokenizerFile, "tokenizer-file", "", "Path to a local tokenizer file")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))
	rootCmd.Flags().IntVar(&maxPromptTokens, "max-prompt-tokens", 100000, "Warn when a prompt exceeds this many tokens")
	viper.BindPFlag("max_prompt_tokens", rootCmd.Flags().Lookup("max-prompt-tokens"))

	// Interactive mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the scan root with a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	viper.SetDefault("mode", "groups")
	viper.SetDefault("pages_root", "src/pages")
	viper.SetDefault("model", "openai/gpt-4o-mini")
	viper.SetDefault("delay", "30s")
	viper.SetDefault("referer", "https://github.com/pageops/pageops")
	viper.SetDefault("client_name", "pageops")
	viper.SetDefault("hidden", false)
	viper.SetDefault("no_ignore", false)
	viper.SetDefault("no_tokens", false)
	viper.SetDefault("tokenizer", "tiktoken")
	viper.SetDefault("max_prompt_tokens", 100000)
}

// initConfig reads the config file, a local .env, and PAGEOPS_* environment
// variables.
func initConfig() {
	// .env is optional; errors other than "not found" are worth a warning.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "pageops"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PAGEOPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
	}

	// Informational request headers are config-only, no flags.
	refererURL = viper.GetString("referer")
	clientName = viper.GetString("client_name")

	applyConfigOverrides()
}

// applyConfigOverrides reads every bound key back from viper so each flag
// variable ends up holding default < config file < env < flag. The cobra
// binding alone only updates viper's view, not the package variables.
func applyConfigOverrides() {
	analysisMode = viper.GetString("mode")
	pagesRoot = viper.GetString("pages_root")
	dryRun = viper.GetBool("dry_run")

	modelID = viper.GetString("model")
	baseURL = viper.GetString("base_url")
	delay = viper.GetDuration("delay")
	jitter = viper.GetDuration("jitter")

	showHidden = viper.GetBool("hidden")
	noIgnore = viper.GetBool("no_ignore")

	outputFile = viper.GetString("file")
	pdfOutputFile = viper.GetString("pdf")
	copyToClipboard = viper.GetBool("clipboard")

	disableTokens = viper.GetBool("no_tokens")
	tokenizerType = viper.GetString("tokenizer")
	tokenizerModel = viper.GetString("tokenizer_model")
	tokenizerFile = viper.GetString("tokenizer_file")
	maxPromptTokens = viper.GetInt("max_prompt_tokens")

	interactiveMode = viper.GetBool("interactive")
}

// initMarkers loads the marker definitions used by the scanner.
func initMarkers() {
	var err error
	markerConfig, err = loadMarkerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load marker definitions: %v\n", err)
		fmt.Fprintln(os.Stderr, "Proceeding with built-in defaults.")
		markerConfig = defaultMarkerConfig()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

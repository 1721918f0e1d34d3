package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/meridian-labs/brief-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/meridian-labs/brief-cli/internal/adapters/driven/embedding/ollama"
	"github.com/meridian-labs/brief-cli/internal/adapters/driven/embedding/openai"
	"github.com/meridian-labs/brief-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/meridian-labs/brief-cli/internal/adapters/driven/llm/ollama"
	"github.com/meridian-labs/brief-cli/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/brief-cli/internal/adapters/driven/vector/flat"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driven"
	"github.com/meridian-labs/brief-cli/internal/core/ports/driving"
	"github.com/meridian-labs/brief-cli/internal/core/services"
	"github.com/meridian-labs/brief-cli/internal/extractors"
	"github.com/meridian-labs/brief-cli/internal/extractors/eml"
	htmlextract "github.com/meridian-labs/brief-cli/internal/extractors/html"
	"github.com/meridian-labs/brief-cli/internal/extractors/markdown"
	"github.com/meridian-labs/brief-cli/internal/extractors/plaintext"
	"github.com/meridian-labs/brief-cli/internal/logger"
)

var version = "0.1.0"

// Services used by the commands. Wired by initServices; tests substitute
// their own implementations.
var (
	meetingService driving.MeetingService
	recallService  driving.RecallService
	briefService   driving.BriefService
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate meeting briefs from your own materials",
	Long: `Brief collects meeting materials (notes, minutes, pasted text),
recalls the most relevant passages with semantic search and asks a
language model to synthesise a structured pre-meeting brief.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the application and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	return rootCmd.Execute()
}

// dataDir returns the data root, honouring the BRIEF_DATA_DIR override.
func dataDir() (string, error) {
	if dir := os.Getenv("BRIEF_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".brief", "data"), nil
}

// initServices is the composition root: config, storage, providers and
// core services, in dependency order.
func initServices() error {
	// API keys are commonly kept in a .env next to the binary. Missing
	// file is fine.
	_ = godotenv.Load()

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("loading prompts: %w", err)
	}

	dir, err := dataDir()
	if err != nil {
		return err
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}

	indexes, err := flat.NewFactory(filepath.Join(dir, "indexes"), embedder.Dimensions())
	if err != nil {
		return fmt.Errorf("opening index directory: %w", err)
	}

	registry := extractors.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(markdown.New())
	registry.Register(htmlextract.New())
	registry.Register(eml.New())

	meetingService = services.NewMeetingService(store.MeetingStore(), store.MaterialStore(), registry)
	recallService = services.NewRecallService(store.MaterialStore(), embedder, indexes, recallConfig(cfg))
	briefService = services.NewBriefService(
		store.MeetingStore(), store.BriefStore(), recallService, llm, prompts, cfg.GetInt("recall.k"))
	return nil
}

// recallConfig overlays configured tunables on the defaults.
func recallConfig(cfg driven.ConfigStore) services.RecallConfig {
	rc := services.DefaultRecallConfig()
	if k := cfg.GetInt("recall.k"); k > 0 {
		rc.DefaultK = k
	}
	if n := cfg.GetInt("recall.passthrough_max_chars"); n > 0 {
		rc.PassthroughMaxChars = n
	}
	if f := cfg.GetFloat("recall.query_score_floor"); f > 0 {
		rc.QueryScoreFloor = f
	}
	if f := cfg.GetFloat("recall.no_query_score_floor"); f > 0 {
		rc.NoQueryScoreFloor = f
	}
	if f := cfg.GetFloat("recall.surrounding_score_factor"); f > 0 {
		rc.SurroundingScoreFactor = f
	}
	if n := cfg.GetInt("recall.chunk_max_len"); n > 0 {
		rc.ChunkMaxLen = n
	}
	if n := cfg.GetInt("recall.chunk_overlap"); n > 0 {
		rc.ChunkOverlap = n
	}
	if f := cfg.GetFloat("recall.chunk_boundary_threshold"); f > 0 && f <= 1 {
		rc.ChunkBoundaryThreshold = f
	}
	if n := cfg.GetInt("recall.pseudo_query_chunks"); n > 0 {
		rc.PseudoQueryChunks = n
	}
	return rc
}

// buildEmbedder selects the embedding provider. Ollama is the default: it
// is local and needs no key.
func buildEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	switch provider := cfg.GetString("embedding.provider"); provider {
	case "", "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil
	case "openai":
		apiKey := cfg.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// buildLLM selects the LLM provider. A missing provider or key is not an
// error here: generation degrades to "no LLM configured" while the rest of
// the CLI keeps working.
func buildLLM(cfg driven.ConfigStore) (driven.LLMService, error) {
	switch provider := cfg.GetString("llm.provider"); provider {
	case "", "gemini":
		apiKey := cfg.GetString("llm.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			if provider == "gemini" {
				return nil, fmt.Errorf("gemini selected but no API key configured (llm.api_key or GEMINI_API_KEY)")
			}
			logger.Warn("No LLM configured; 'brief generate' will be unavailable")
			return nil, nil
		}
		return gemini.NewLLMService(gemini.Config{
			APIKey:  apiKey,
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		})
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

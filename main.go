package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gouranga-GH/yt-to-other-sm/config"
	"github.com/Gouranga-GH/yt-to-other-sm/document"
	"github.com/Gouranga-GH/yt-to-other-sm/pipeline"
	"github.com/Gouranga-GH/yt-to-other-sm/platform"
	"github.com/Gouranga-GH/yt-to-other-sm/server"
	"github.com/Gouranga-GH/yt-to-other-sm/youtube"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "", "path to config.json (empty: environment only)")
	videoURL := flag.String("url", "", "YouTube video URL")
	platformName := flag.String("platform", "Instagram", "target platform (Instagram or Medium)")
	contentType := flag.String("type", "Post", "content type for the platform")
	outDir := flag.String("out", "", "output directory for the generated document (overrides config)")
	logDir := flag.String("logdir", "logs", "directory for the log file (empty: console only)")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.Parse()

	// .env is optional; real environment wins.
	_ = godotenv.Load()

	setupLogging(*logDir)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		runServer(cfg, *addr)
		return
	}

	if *videoURL == "" {
		fmt.Fprintln(os.Stderr, "--url is required (or use --serve)")
		os.Exit(1)
	}
	runOnce(cfg, *videoURL, *platformName, *contentType, *outDir)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// setupLogging tees log output to a file alongside the console, matching the
// diagnostics the web shell expects to find on disk.
func setupLogging(dir string) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[cli] cannot create log dir %s: %v", dir, err)
		return
	}
	path := filepath.Join(dir, "app.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[cli] cannot open log file %s: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
}

func runServer(cfg config.Config, addr string) {
	extractor := youtube.New()
	srv, err := server.New(extractor, llmFactory(cfg), serverOptions(cfg)...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	listen := cfg.ServerAddr
	if addr != "" {
		listen = addr
	}
	if listen == "" {
		listen = ":8080"
	}
	log.Printf("Starting web server on %s", listen)
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serverOptions(cfg config.Config) []server.Option {
	var opts []server.Option
	if cfg.MinSourceCoverage != nil {
		opts = append(opts, server.WithMinSourceCoverage(*cfg.MinSourceCoverage))
	}
	return opts
}

func runOnce(cfg config.Config, videoURL, platformName, contentType, outDir string) {
	sel := platform.Selection{
		Platform:    platform.Platform(platformName),
		ContentType: platform.ContentType(contentType),
	}
	if err := sel.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	llm, err := buildLLM(cfg, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var popts []pipeline.Option
	if cfg.MinSourceCoverage != nil {
		popts = append(popts, pipeline.WithMinSourceCoverage(*cfg.MinSourceCoverage))
	}
	p, err := pipeline.New(llm, popts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Printf("[cli] extracting %s", videoURL)
	extractor := youtube.New()
	video, err := extractor.Extract(ctx, videoURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Printf("[cli] generating %s/%s content for %q", sel.Platform, sel.ContentType, video.Title)
	final, err := p.Run(ctx, video, sel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	doc := document.Assemble(final, video, time.Now())
	dir := outDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	path := filepath.Join(dir, doc.Filename())
	if err := os.WriteFile(path, []byte(doc.Markdown()), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Printf("[cli] generation done file=%s chars=%d", path, len(doc.Body))
	fmt.Println(path)
}

// llmFactory builds per-request LLM clients for the web shell, where each
// caller may supply their own API key.
func llmFactory(cfg config.Config) server.LLMFactory {
	return func(apiKey string) (pipeline.LLMClient, error) {
		return buildLLM(cfg, apiKey)
	}
}

func buildLLM(cfg config.Config, apiKey string) (pipeline.LLMClient, error) {
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; please set llm.provider/model/api_key in config")
	}
	key := cfg.LLM.APIKey
	if apiKey != "" {
		key = apiKey
	}
	switch cfg.LLM.Provider {
	case "openai":
		return pipeline.NewOpenAILLMFromConfig(&pipeline.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   key,
			BaseURL:  cfg.LLM.BaseURL,
		})
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible interface; base_url is required.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return pipeline.NewOpenAILLMFromConfig(&pipeline.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   key,
			BaseURL:  cfg.LLM.BaseURL,
		})
	case "mock":
		// Offline mode for trying the workflow without a credential.
		return pipeline.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

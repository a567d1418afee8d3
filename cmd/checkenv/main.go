// checkenv prints which model credentials are configured and optionally
// sends a test prompt to the active provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/config"
	"statement_insight/pkg/core/logger"
)

func main() {
	ping := flag.Bool("ping", false, "send a test prompt to the configured provider")
	timeout := flag.Duration("timeout", 60*time.Second, "ping timeout")
	flag.Parse()

	fmt.Printf("Go version: %s\n", runtime.Version())
	cwd, _ := os.Getwd()
	_, err := os.Stat(filepath.Join(cwd, ".env"))
	fmt.Printf(".env file exists: %v\n", err == nil)

	cfg := config.Load()
	_ = logger.InitLogger(cfg.LogLevel, "")

	report := func(name, value string) {
		if value == "" {
			fmt.Printf("%s: not set\n", name)
			return
		}
		fmt.Printf("%s: %s\n", name, logger.Mask(value))
	}
	report("GOOGLE_API_KEY", cfg.GoogleAPIKey)
	report("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	report("OPENAI_API_KEY", cfg.OpenAIAPIKey)

	agentCfg, err := cfg.LoadModels()
	if err != nil {
		fmt.Printf("Models config error: %v\n", err)
		os.Exit(1)
	}
	mgr := agent.NewManager(context.Background(), agentCfg, cfg.Credentials())
	for _, a := range []string{agent.AgentExtraction, agent.AgentChat} {
		status := "ready"
		if err := mgr.Ready(a); err != nil {
			status = err.Error()
		}
		fmt.Printf("Agent %-10s provider=%s model=%s status=%s\n", a, mgr.ProviderName(a), mgr.ModelName(a), status)
	}

	if !*ping {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	resp, err := mgr.Generate(ctx, agent.AgentChat, "Hello, are you working?", "", nil)
	if err != nil {
		fmt.Printf("API Test Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("API Test Result: Success")
	fmt.Println(resp)
}

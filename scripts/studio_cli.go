//go:build ignore

// studio_cli drives the studio workflow from a terminal.
// Usage: go run scripts/studio_cli.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"campaigner/internal/agents"
	"campaigner/internal/config"
	models "campaigner/internal/domain/models/studio"
	"campaigner/internal/repository"
	"campaigner/internal/service/agent"
	"campaigner/internal/service/studio"
	"campaigner/internal/service/studio/history"

	"github.com/joho/godotenv"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type CLI struct {
	ctx      context.Context
	workflow *studio.Service
	scanner  *bufio.Scanner
	logger   *slog.Logger
}

// setupLogger writes INFO text to the console and DEBUG JSON to a log file
func setupLogger(cfg *config.Config) (*slog.Logger, *os.File, error) {
	dir := cfg.LogDir
	if dir == "" {
		dir = "logs"
	}
	logFile, err := config.SetupLogFile(dir, "studio_cli", cfg.LogMaxFiles)
	if err != nil {
		return nil, nil, err
	}

	return slog.New(&multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}), logFile, nil
}

// multiHandler writes to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

func fail(format string, args ...any) {
	fmt.Printf("%s✗ "+format+"%s\n", append(append([]any{colorRed}, args...), colorReset)...)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fail("Invalid configuration: %v", err)
	}

	logger, logFile, err := setupLogger(cfg)
	if err != nil {
		fail("Failed to setup logger: %v", err)
	}
	defer logFile.Close()
	logger.Info("session started", "log_file", logFile.Name())

	ctx := context.Background()

	registry, err := agents.NewRegistry()
	if err != nil {
		fail("Failed to load agent roster: %v", err)
	}
	registry.Override(cfg.ContentAgentID, cfg.ImageAgentID)

	slot, closeSlot, err := repository.OpenSlot(ctx, cfg, logger)
	if err != nil {
		fail("Failed to open history slot: %v", err)
	}
	defer closeSlot()

	store := history.NewStore(slot, cfg.HistoryKey, cfg.HistoryCap, logger)
	store.Load(ctx)

	transport, err := agent.NewTransport(cfg, registry, logger)
	if err != nil {
		fail("Failed to create agent transport: %v", err)
	}

	cli := &CLI{
		ctx: ctx,
		workflow: studio.NewService(transport, store, registry, studio.Config{
			ContentAgentID: registry.ContentAgent().ID,
			ImageAgentID:   registry.ImageAgent().ID,
			ClearDelay:     cfg.StatusClearDelay,
		}, logger),
		scanner: bufio.NewScanner(os.Stdin),
		logger:  logger,
	}
	cli.run(cfg)
}

func (cli *CLI) run(cfg *config.Config) {
	fmt.Printf("\n%s╔══════════════════════════════════════╗%s\n", colorCyan, colorReset)
	fmt.Printf("%s║    Campaign Studio CLI               ║%s\n", colorCyan, colorReset)
	fmt.Printf("%s╚══════════════════════════════════════╝%s\n", colorCyan, colorReset)
	fmt.Printf("%sProvider: %s | History: %s (%d entries)%s\n", colorBlue, cfg.AgentProvider, cfg.HistoryBackend, cli.workflow.Snapshot().HistoryCount, colorReset)

	for {
		fmt.Println("\n" + strings.Repeat("─", 40))
		fmt.Println("Main Menu:")
		fmt.Println("1. Generate marketing package")
		fmt.Println("2. Generate graphics for current package")
		fmt.Println("3. Show current package")
		fmt.Println("4. Search history")
		fmt.Println("5. Load history entry")
		fmt.Println("6. Delete history entry")
		fmt.Println("7. Exit")
		fmt.Print("\nSelect option (1-7): ")

		choice := cli.readLine()
		fmt.Println()
		cli.logger.Debug("menu selection", "choice", choice)

		switch choice {
		case "1":
			cli.briefFlow()
		case "2":
			cli.graphicsFlow()
		case "3":
			cli.showPackage(cli.workflow.Snapshot())
		case "4":
			cli.searchFlow()
		case "5":
			cli.loadFlow()
		case "6":
			cli.deleteFlow()
		case "7":
			fmt.Printf("%s✓ Goodbye!%s\n", colorGreen, colorReset)
			return
		default:
			fmt.Printf("%s⚠ Invalid choice. Please enter 1-7.%s\n", colorYellow, colorReset)
		}
	}
}

func (cli *CLI) briefFlow() {
	fmt.Printf("%s=== Creative Brief ===%s\n\n", colorCyan, colorReset)

	brief := models.NewDraftBrief()
	brief.Channel = cli.prompt("Channel (blog/social/email)", models.ChannelBlog)
	brief.Topic = cli.prompt("Topic", "")
	brief.Audience = cli.prompt("Target audience", "")
	brief.Keywords = cli.editKeywords(models.AddKeywords(nil, strings.Split(cli.prompt("Keywords (comma separated)", ""), ",")...))
	brief.Tone = cli.prompt("Tone", models.ToneProfessional)
	brief.Notes = cli.prompt("Notes", "")

	fmt.Printf("\n%s… Generating your marketing package%s\n", colorBlue, colorReset)
	snap, err := cli.workflow.SubmitBrief(cli.ctx, brief)
	if err != nil {
		fmt.Printf("%s✗ %v%s\n", colorRed, err, colorReset)
		return
	}
	fmt.Printf("%s✓ %s%s\n", colorGreen, snap.StatusMessage, colorReset)
	cli.showPackage(snap)
}

// editKeywords lists the keyword chips and removes them by number until the
// user enters nothing
func (cli *CLI) editKeywords(keywords []string) []string {
	for len(keywords) > 0 {
		for i, kw := range keywords {
			fmt.Printf("  %s[%d]%s %s\n", colorYellow, i+1, colorReset, kw)
		}
		n, err := strconv.Atoi(cli.prompt("Remove keyword # (enter to keep)", ""))
		if err != nil {
			break
		}
		keywords = models.RemoveKeyword(keywords, n-1)
	}
	return keywords
}

func (cli *CLI) graphicsFlow() {
	snap, err := cli.workflow.RequestGraphics(cli.ctx)
	if err != nil {
		fmt.Printf("%s✗ %v%s\n", colorRed, err, colorReset)
		return
	}
	if snap.CurrentPackage == nil {
		fmt.Printf("%s⚠ Generate a package first%s\n", colorYellow, colorReset)
		return
	}

	fmt.Printf("%s✓ %s%s\n", colorGreen, snap.StatusMessage, colorReset)
	for _, img := range snap.CurrentImages {
		fmt.Printf("  • %s (%s): %s\n", img.Name, img.FormatType, img.FileURL)
	}
	if snap.CurrentImageMeta != nil {
		fmt.Printf("\n%sDescription:%s %s\n", colorBlue, colorReset, snap.CurrentImageMeta.ImageDescription)
		fmt.Printf("%sUsage:%s %s\n", colorBlue, colorReset, snap.CurrentImageMeta.SuggestedUsage)
	}
}

func (cli *CLI) showPackage(snap *models.Snapshot) {
	pkg := snap.CurrentPackage
	if pkg == nil {
		fmt.Printf("%s⚠ No package yet%s\n", colorYellow, colorReset)
		return
	}

	score := models.ClampScore(pkg.SeoAnalysis.OverallScore)
	fmt.Printf("\n%s%s%s [%s]\n", colorCyan, pkg.Content.Title, colorReset, pkg.ChannelType)
	fmt.Printf("SEO score: %d (%s) | Words: %d\n\n", score, models.BandForScore(score), pkg.Content.WordCount)
	fmt.Println(pkg.Content.Body)

	if len(pkg.SeoAnalysis.OptimizationChecklist) > 0 {
		fmt.Printf("\n%sChecklist:%s\n", colorBlue, colorReset)
		for _, item := range pkg.SeoAnalysis.OptimizationChecklist {
			fmt.Printf("  [%s/%s] %s\n", item.StatusClass(), item.PriorityClass(), item.Item)
		}
	}
}

func (cli *CLI) searchFlow() {
	search := cli.prompt("Search", "")
	channel := cli.prompt("Channel (all/blog/social/email)", models.ChannelAll)

	entries := cli.workflow.QueryHistory(search, channel)
	if len(entries) == 0 {
		fmt.Printf("%s⚠ No matching entries%s\n", colorYellow, colorReset)
		return
	}
	for _, e := range entries {
		fmt.Printf("  %s  %s  [%s] %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), e.PackageData.ChannelType, e.PackageData.PackageTitle)
	}
}

func (cli *CLI) loadFlow() {
	snap, err := cli.workflow.LoadHistoryEntry(cli.ctx, cli.prompt("Entry ID", ""))
	if err != nil {
		fmt.Printf("%s✗ %v%s\n", colorRed, err, colorReset)
		return
	}
	cli.showPackage(snap)

	if strings.EqualFold(cli.prompt("Dump as JSON? (y/n)", "n"), "y") {
		out, _ := json.MarshalIndent(snap, "", "  ")
		fmt.Println(string(out))
	}
}

func (cli *CLI) deleteFlow() {
	if err := cli.workflow.DeleteHistoryEntry(cli.ctx, cli.prompt("Entry ID", "")); err != nil {
		fmt.Printf("%s✗ %v%s\n", colorRed, err, colorReset)
		return
	}
	fmt.Printf("%s✓ Deleted%s\n", colorGreen, colorReset)
}

func (cli *CLI) prompt(label, fallback string) string {
	if fallback != "" {
		fmt.Printf("%s [%s]: ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}
	if v := cli.readLine(); v != "" {
		return v
	}
	return fallback
}

func (cli *CLI) readLine() string {
	if !cli.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(cli.scanner.Text())
}

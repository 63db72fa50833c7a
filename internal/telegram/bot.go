// Package telegram runs the webhook bot: send a food photo, get the full
// analysis back; send a recipe URL, get its ingredients and nutrition.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"food-analyzer/internal/analysis"
	"food-analyzer/internal/config"
	"food-analyzer/internal/imaging"
	"food-analyzer/internal/metrics"
	"food-analyzer/internal/recipe"
	"food-analyzer/internal/shared"
)

// Analyzer is the pipeline surface the bot drives.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, userID, customPrompt string) (*analysis.Result, error)
	Recalculate(ctx context.Context, ingredientsText string) (string, shared.StageMeta, error)
}

// Clipper extracts an ingredient block from a recipe URL.
type Clipper interface {
	ClipURL(ctx context.Context, url string) (*recipe.ClippedRecipe, error)
}

// Bot wraps the Telegram API, the analyzer and the clipper.
type Bot struct {
	api          *tgbotapi.BotAPI
	analyzer     Analyzer
	clipper      Clipper
	metricsStore *metrics.Store
	cfg          *config.Config
	httpClient   *http.Client
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, analyzer Analyzer, clipper Clipper, metricsStore *metrics.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		analyzer:     analyzer,
		clipper:      clipper,
		metricsStore: metricsStore,
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}
	if update.Message == nil {
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case msg.Text == "/metrics":
		b.handleMetricsRequest(msg)
	case len(msg.Photo) > 0:
		b.handlePhotoRequest(msg)
	case strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://"):
		b.handleClipperRequest(msg)
	default:
		reply := tgbotapi.NewMessage(msg.Chat.ID, "📷 Send me a photo of your meal, or a recipe URL.")
		b.api.Send(reply)
	}
}

func (b *Bot) handlePhotoRequest(msg *tgbotapi.Message) {
	statusText := "🔍 *Analyzing your meal...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// Telegram orders photo sizes smallest first.
	photo := msg.Photo[len(msg.Photo)-1]
	data, err := b.downloadPhoto(ctx, photo.FileID)

	var finalText string
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		finalText = "❌ *Could not download the photo.* Please try again."
	} else {
		userID := fmt.Sprintf("tg-%d", msg.From.ID)
		result, err := b.analyzer.Analyze(ctx, data, userID, msg.Caption)
		if err != nil {
			safeErr := strings.ReplaceAll(err.Error(), "`", "'")
			finalText = fmt.Sprintf("❌ *Error analyzing photo:*\n```\n%v\n```", safeErr)
		} else {
			b.recordStages(result.Stages)
			finalText = formatResultMarkdown(result)
		}
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) downloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download photo: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, imaging.MaxUploadBytes))
}

func (b *Bot) handleClipperRequest(msg *tgbotapi.Message) {
	statusText := "✂️ *Clipping recipe...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	var finalText string
	clipped, err := b.clipper.ClipURL(ctx, msg.Text)
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error clipping recipe:*\n```\n%v\n```", safeErr)
	} else {
		block, meta, err := b.analyzer.Recalculate(ctx, clipped.Ingredients)
		if err != nil {
			block = ""
		} else {
			b.recordStages([]shared.StageMeta{meta})
		}
		finalText = formatClippedMarkdown(clipped, block)
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usage, err := b.metricsStore.GetDailyUsage(ctx, 7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Pipeline Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d stages, %d degraded)\n",
			d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution, d.TotalDegraded))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	out := tgbotapi.NewMessage(chatID, sb.String())
	out.ParseMode = "Markdown"
	b.api.Send(out)
}

func (b *Bot) recordStages(metas []shared.StageMeta) {
	if b.metricsStore == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.metricsStore.RecordStages(ctx, metas); err != nil {
		log.Printf("⚠️ Failed to record stage metrics: %v", err)
	}
}

func formatResultMarkdown(res *analysis.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🍽 *%s*\n", res.DishPrediction))
	sb.WriteString(fmt.Sprintf("⏱ %.1f seconds\n\n", res.AnalysisTime))

	writeBlock := func(header, block string) {
		records, _ := analysis.ParseLines(block)
		if len(records) == 0 {
			return
		}
		sb.WriteString(header + "\n")
		for _, r := range records {
			sb.WriteString(fmt.Sprintf("• %s: %s %s\n", r.Name, analysis.FormatQuantity(r.Quantity), r.Unit))
		}
		sb.WriteString("\n")
	}

	writeBlock("🥗 *Visible ingredients*", res.ImageDescription)
	writeBlock("🧂 *Hidden ingredients*", res.HiddenIngredients)
	writeBlock("📋 *Nutrition*", res.NutritionInfo)

	if res.Status != analysis.StatusSuccess {
		sb.WriteString(fmt.Sprintf("⚠️ _%s_\n", res.Error))
	}
	return sb.String()
}

func formatClippedMarkdown(clipped *recipe.ClippedRecipe, nutritionBlock string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ *%s*\n%s\n\n", clipped.Title, clipped.SourceURL))

	sb.WriteString("🥗 *Ingredients*\n")
	records, _ := analysis.ParseLines(clipped.Ingredients)
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("• %s: %s %s\n", r.Name, analysis.FormatQuantity(r.Quantity), r.Unit))
	}

	if nutritionBlock != "" {
		sb.WriteString("\n📋 *Nutrition*\n")
		nutrients, _ := analysis.ParseLines(nutritionBlock)
		for _, n := range nutrients {
			sb.WriteString(fmt.Sprintf("• %s: %s %s\n", n.Name, analysis.FormatQuantity(n.Quantity), n.Unit))
		}
	}
	return sb.String()
}

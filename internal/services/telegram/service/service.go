// Package service implements the telegram transport loop
package service

import (
	"context"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vidtally/internal/platform/logger"
	answerdom "vidtally/internal/services/answer/domain"
)

const greeting = "Задайте вопрос о метриках видео, в ответ придёт одно число."

// Bot is the slice of the telegram client the poller uses
type Bot interface {
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	StopReceivingUpdates()
}

// Config for the telegram service
type Config struct {
	Workers     int
	PollTimeout time.Duration
}

// Service implements domain.RunnerPort
type Service struct {
	Bot Bot
	Ask answerdom.AskPort
	Cfg Config
}

// New constructs a new telegram service
func New(bot Bot, ask answerdom.AskPort, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30 * time.Second
	}
	return &Service{Bot: bot, Ask: ask, Cfg: cfg}
}

// Run polls for updates until ctx ends.
// Each message is handled in its own goroutine behind a bounded semaphore
func (s *Service) Run(ctx context.Context) error {
	log := logger.Named("telegram")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(s.Cfg.PollTimeout / time.Second)
	updates := s.Bot.GetUpdatesChan(u)

	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	log.Info().Int("workers", s.Cfg.Workers).Msg("bot polling started")
	for {
		select {
		case <-ctx.Done():
			s.Bot.StopReceivingUpdates()
			wg.Wait()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				wg.Wait()
				return nil
			}
			if upd.Message == nil {
				continue
			}
			msg := upd.Message
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer func() { <-sem; wg.Done() }()
				s.handle(ctx, msg)
			}()
		}
	}
}

// handle replies to one message; a panic anywhere downstream still answers "0"
func (s *Service) handle(ctx context.Context, msg *tgbotapi.Message) {
	ctx = logger.WithChat(ctx, msg.Chat.ID)
	log := logger.C(ctx)

	defer func() {
		if v := recover(); v != nil {
			log.Error().Interface("panic", v).Msgf("update handler panicked\n%s", debug.Stack())
			s.reply(ctx, msg.Chat.ID, "0")
		}
	}()

	if msg.IsCommand() {
		if msg.Command() == "start" {
			s.reply(ctx, msg.Chat.ID, greeting)
		}
		return
	}

	log.Info().
		Int("message_id", msg.MessageID).
		Str("question", msg.Text).
		Msg("incoming message")

	n := s.Ask.Answer(ctx, msg.Text)

	log.Info().Int64("answer", n).Int("message_id", msg.MessageID).Msg("question answered")
	s.reply(ctx, msg.Chat.ID, strconv.FormatInt(n, 10))
}

func (s *Service) reply(ctx context.Context, chatID int64, text string) {
	if _, err := s.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("telegram send failed")
	}
}

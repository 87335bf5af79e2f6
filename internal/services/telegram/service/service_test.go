package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vidtally/internal/services/answer/domain"
)

type fakeBot struct {
	mu      sync.Mutex
	ch      chan tgbotapi.Update
	sent    []tgbotapi.MessageConfig
	stopped bool
}

func newFakeBot(buf int) *fakeBot {
	return &fakeBot{ch: make(chan tgbotapi.Update, buf)}
}

func (f *fakeBot) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tgbotapi.UpdatesChannel(f.ch)
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeBot) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.Text)
	}
	return out
}

func (f *fakeBot) wasStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeAsk struct {
	mu        sync.Mutex
	questions []string
	n         int64
	panics    bool
}

func (f *fakeAsk) Answer(_ context.Context, question string) int64 {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.mu.Unlock()
	if f.panics {
		panic("ask exploded")
	}
	return f.n
}

func (f *fakeAsk) Parse(context.Context, string) domain.Resolution { return domain.Resolution{} }

func (f *fakeAsk) asked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.questions...)
}

func textUpdate(chatID int64, id int, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: id,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: chatID},
	}}
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	u := textUpdate(chatID, 1, text)
	u.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	return u
}

// runToDrain feeds the given updates, closes the channel and waits for Run to return
func runToDrain(t *testing.T, bot *fakeBot, svc *Service, updates ...tgbotapi.Update) {
	t.Helper()

	for _, u := range updates {
		bot.ch <- u
	}
	close(bot.ch)

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v after channel close, want nil", err)
	}
}

func TestRun_AnswersQuestion(t *testing.T) {
	t.Parallel()

	bot := newFakeBot(1)
	ask := &fakeAsk{n: 1234567}
	svc := New(bot, ask, Config{})

	runToDrain(t, bot, svc, textUpdate(42, 7, "сколько всего просмотров?"))

	if got := bot.texts(); len(got) != 1 || got[0] != "1234567" {
		t.Fatalf("sent %v, want [1234567]", got)
	}
	if got := ask.asked(); len(got) != 1 || got[0] != "сколько всего просмотров?" {
		t.Fatalf("ask received %v", got)
	}
}

func TestRun_StartCommandGreets(t *testing.T) {
	t.Parallel()

	bot := newFakeBot(1)
	ask := &fakeAsk{n: 99}
	svc := New(bot, ask, Config{})

	runToDrain(t, bot, svc, commandUpdate(42, "/start"))

	if got := bot.texts(); len(got) != 1 || got[0] != greeting {
		t.Fatalf("sent %v, want the greeting", got)
	}
	if got := ask.asked(); len(got) != 0 {
		t.Fatalf("/start reached the answer pipeline: %v", got)
	}
}

func TestRun_PanicRepliesZero(t *testing.T) {
	t.Parallel()

	bot := newFakeBot(1)
	svc := New(bot, &fakeAsk{panics: true}, Config{})

	runToDrain(t, bot, svc, textUpdate(42, 7, "boom"))

	if got := bot.texts(); len(got) != 1 || got[0] != "0" {
		t.Fatalf("sent %v, want [0]", got)
	}
}

func TestRun_SkipsNonMessageUpdates(t *testing.T) {
	t.Parallel()

	bot := newFakeBot(2)
	ask := &fakeAsk{n: 5}
	svc := New(bot, ask, Config{})

	runToDrain(t, bot, svc,
		tgbotapi.Update{}, // callback queries, edits and the like carry no Message
		textUpdate(42, 7, "сколько видео?"),
	)

	if got := bot.texts(); len(got) != 1 || got[0] != "5" {
		t.Fatalf("sent %v, want [5]", got)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	bot := newFakeBot(0)
	svc := New(bot, &fakeAsk{}, Config{Workers: 2, PollTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if !bot.wasStopped() {
		t.Fatal("StopReceivingUpdates was not called")
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Parallel()

	svc := New(newFakeBot(0), &fakeAsk{}, Config{})
	if svc.Cfg.Workers != 8 {
		t.Fatalf("Workers = %d, want 8", svc.Cfg.Workers)
	}
	if svc.Cfg.PollTimeout != 30*time.Second {
		t.Fatalf("PollTimeout = %s, want 30s", svc.Cfg.PollTimeout)
	}
}

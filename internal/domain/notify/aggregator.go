// Package notify собирает уведомления из нескольких продуктовых бэкендов
// в одну ленту. Источники опрашиваются параллельно; отказ одного не
// валит остальные - лента просто деградирует до доступных.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"adminhub/internal/model"
	"adminhub/internal/transport"
)

// Client - транспорт одного источника уведомлений.
type Client interface {
	Request(ctx context.Context, method, path string, body any) (*transport.Envelope, error)
}

// Source - один продуктовый бэкенд с уведомлениями.
type Source struct {
	Name     string
	Client   Client
	ListPath string // GET: список + счетчик unread
	ReadPath string // база для пометки, PUT <ReadPath>/:id/read
}

type sourceState struct {
	items  []model.Notification
	unread int
	err    error
}

// Aggregator держит объединенную ленту и счетчики по источникам.
// Счетчик непрочитанных - авторитет сервера, локально он не считается.
type Aggregator struct {
	log     *slog.Logger
	sources []Source

	mu     sync.Mutex
	states map[string]*sourceState
}

func New(sources []Source, log *slog.Logger) *Aggregator {
	states := make(map[string]*sourceState, len(sources))
	for _, s := range sources {
		states[s.Name] = &sourceState{}
	}
	return &Aggregator{
		log:     log,
		sources: sources,
		states:  states,
	}
}

// Refresh опрашивает все источники параллельно. Ошибка отдельного
// источника записывается в его состояние и не прерывает остальных,
// поэтому сама Refresh всегда возвращает nil через errgroup.
func (a *Aggregator) Refresh(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)

	for _, src := range a.sources {
		src := src
		g.Go(func() error {
			env, err := src.Client.Request(ctx, http.MethodGet, src.ListPath, nil)
			if err != nil {
				a.log.Warn("Источник уведомлений недоступен", "source", src.Name, "error", err)
				a.setError(src.Name, err)
				return nil
			}

			items := notificationsFromEnvelope(env, src.Name)
			// счетчик только серверный; источник без счетчика дает ноль
			unread, _ := env.Int("unread")
			a.setState(src.Name, items, unread)
			return nil
		})
	}

	_ = g.Wait()
}

func (a *Aggregator) setState(name string, items []model.Notification, unread int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.states[name] = &sourceState{items: items, unread: unread}
}

func (a *Aggregator) setError(name string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.states[name]
	if !ok {
		st = &sourceState{}
		a.states[name] = st
	}
	// старый список остается на экране, ошибка помечает источник
	st.err = err
}

// Feed возвращает объединенную ленту, новые сверху. Порядок стабилен:
// при равном времени побеждает источник, объявленный раньше.
func (a *Aggregator) Feed() []model.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()

	var merged []model.Notification
	for _, src := range a.sources {
		if st, ok := a.states[src.Name]; ok {
			merged = append(merged, st.items...)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// Unread - суммарный счетчик непрочитанных по всем источникам.
func (a *Aggregator) Unread() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := 0
	for _, st := range a.states {
		total += st.unread
	}
	return total
}

// SourceErr возвращает последнюю ошибку источника (nil - источник жив).
func (a *Aggregator) SourceErr(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if st, ok := a.states[name]; ok {
		return st.err
	}
	return nil
}

// MarkAsRead помечает уведомление прочитанным на его источнике.
// Уведомление с неизвестным источником уходит на первый объявленный:
// push-сообщения не всегда несут имя источника.
func (a *Aggregator) MarkAsRead(ctx context.Context, id string) error {
	if len(a.sources) == 0 {
		return fmt.Errorf("нет источников уведомлений")
	}

	src := a.sources[0]
	if name, ok := a.sourceOf(id); ok {
		for _, s := range a.sources {
			if s.Name == name {
				src = s
				break
			}
		}
	}

	env, err := src.Client.Request(ctx, http.MethodPut, src.ReadPath+"/"+id+"/read", nil)
	if err != nil {
		return fmt.Errorf("ошибка пометки уведомления: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	st := a.states[src.Name]
	for i := range st.items {
		if st.items[i].ID == id {
			st.items[i].Read = true
		}
	}
	// сервер присылает новый счетчик вместе с подтверждением
	if unread, ok := env.Int("unread"); ok {
		st.unread = unread
	} else if st.unread > 0 {
		st.unread--
	}
	return nil
}

func (a *Aggregator) sourceOf(id string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for name, st := range a.states {
		for _, n := range st.items {
			if n.ID == id {
				return name, true
			}
		}
	}
	return "", false
}

// ApplyPush вставляет уведомление, пришедшее вне опроса (веб-сокет,
// SSE - подключается снаружи). Счетчик источника заменяется значением
// unread из push-сообщения, локально он не пересчитывается. Дубликаты
// по ID не вставляются повторно, но счетчик все равно обновляется.
func (a *Aggregator) ApplyPush(n model.Notification, unread int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := n.Source
	st, ok := a.states[name]
	if !ok {
		if len(a.sources) == 0 {
			return
		}
		name = a.sources[0].Name
		n.Source = name
		st = a.states[name]
	}

	st.unread = unread

	for _, have := range st.items {
		if have.ID == n.ID {
			return
		}
	}

	st.items = append([]model.Notification{n}, st.items...)
}

func notificationsFromEnvelope(env *transport.Envelope, source string) []model.Notification {
	records := env.List("notifications")
	items := make([]model.Notification, 0, len(records))
	for _, rec := range records {
		read, _ := rec.Field("read").(bool)
		items = append(items, model.Notification{
			ID:        rec.ID,
			Source:    source,
			Title:     rec.StringField("title"),
			Message:   rec.StringField("message"),
			Read:      read,
			CreatedAt: rec.CreatedAt,
		})
	}
	return items
}

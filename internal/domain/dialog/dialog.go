// Package dialog - машина состояний формы создания/редактирования записи.
// Черновик живет только пока диалог открыт: отмена его выбрасывает,
// в хранилище он попадает только по явному Submit.
package dialog

import (
	"context"
	"errors"

	"golang.org/x/exp/slog"

	"adminhub/internal/model"
)

type State int

const (
	StateClosed State = iota
	StateCreating
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	default:
		return "closed"
	}
}

var (
	ErrClosed     = errors.New("диалог закрыт")
	ErrSubmitting = errors.New("запрос уже выполняется")
)

// Mutator - часть хранилища коллекции, нужная диалогу.
type Mutator interface {
	Create(ctx context.Context, draft map[string]any) (model.Record, error)
	Update(ctx context.Context, id string, fields map[string]any) (model.Record, error)
}

// Dialog держит черновик и текущую фазу. Флаг submitting блокирует
// повторную отправку, пока запрос в полете.
type Dialog struct {
	store  Mutator
	schema []FieldSpec
	log    *slog.Logger

	state      State
	submitting bool
	recordID   string
	draft      map[string]any
	lastErr    error
}

func New(store Mutator, schema []FieldSpec, log *slog.Logger) *Dialog {
	return &Dialog{
		store:  store,
		schema: schema,
		log:    log,
	}
}

func (d *Dialog) State() State     { return d.state }
func (d *Dialog) Submitting() bool { return d.submitting }
func (d *Dialog) Err() error       { return d.lastErr }

// Draft возвращает текущий черновик (nil, если диалог закрыт).
func (d *Dialog) Draft() map[string]any { return d.draft }

// OpenCreate открывает диалог с пустым шаблоном.
func (d *Dialog) OpenCreate() {
	d.state = StateCreating
	d.recordID = ""
	d.draft = make(map[string]any, len(d.schema))
	d.lastErr = nil
}

// OpenEdit засевает черновик копией записи. Чувствительные поля
// (пароли) никогда не попадают в черновик: пустое значение на
// обновлении означает "не менять".
func (d *Dialog) OpenEdit(rec model.Record) {
	d.state = StateEditing
	d.recordID = rec.ID
	d.draft = make(map[string]any, len(d.schema))
	d.lastErr = nil

	for _, spec := range d.schema {
		if spec.Sensitive {
			continue
		}
		if v := rec.Field(spec.Name); v != nil {
			d.draft[spec.Name] = v
		}
	}
}

// SetField записывает значение поля в черновик.
func (d *Dialog) SetField(name string, value any) error {
	if d.state == StateClosed {
		return ErrClosed
	}
	d.draft[name] = value
	return nil
}

// Cancel закрывает диалог и выбрасывает черновик. Слияния нет.
func (d *Dialog) Cancel() {
	d.state = StateClosed
	d.submitting = false
	d.recordID = ""
	d.draft = nil
	d.lastErr = nil
}

// Submit валидирует черновик и отправляет его в хранилище. Успех
// закрывает диалог; ошибка оставляет его открытым с нетронутым
// черновиком, чтобы пользователь поправил и отправил снова.
func (d *Dialog) Submit(ctx context.Context) (model.Record, error) {
	if d.state == StateClosed {
		return model.Record{}, ErrClosed
	}
	if d.submitting {
		return model.Record{}, ErrSubmitting
	}

	if err := Validate(d.draft, d.schema, d.state == StateCreating); err != nil {
		d.lastErr = err
		return model.Record{}, err
	}

	d.submitting = true
	defer func() { d.submitting = false }()

	var (
		rec model.Record
		err error
	)

	switch d.state {
	case StateCreating:
		rec, err = d.store.Create(ctx, d.draft)
	case StateEditing:
		rec, err = d.store.Update(ctx, d.recordID, d.withoutBlankSensitive())
	}

	if err != nil {
		d.lastErr = err
		d.log.Warn("Отправка формы не удалась", "state", d.state.String(), "error", err)
		return model.Record{}, err
	}

	d.Cancel()
	return rec, nil
}

// withoutBlankSensitive выбрасывает пустые чувствительные поля:
// незаполненный пароль на обновлении означает "оставить как есть".
func (d *Dialog) withoutBlankSensitive() map[string]any {
	out := make(map[string]any, len(d.draft))
	for k, v := range d.draft {
		out[k] = v
	}
	for _, spec := range d.schema {
		if !spec.Sensitive {
			continue
		}
		if s, ok := out[spec.Name].(string); ok && s == "" {
			delete(out, spec.Name)
		}
	}
	return out
}

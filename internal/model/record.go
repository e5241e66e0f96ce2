package model

import "time"

// Record - обобщенная запись любого бэкенда. Конкретный набор полей
// зависит от продукта и ресурса, поэтому поля хранятся в карте.
// Инвариант: ID не меняется за время жизни записи.
type Record struct {
	ID        string         `json:"id"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at,omitzero"`
}

// Field возвращает значение поля или nil, если его нет.
func (r Record) Field(name string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// StringField возвращает строковое значение поля.
// Отсутствующее или нестроковое поле трактуется как пустая строка.
func (r Record) StringField(name string) string {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Clone возвращает копию записи с собственной картой полей.
func (r Record) Clone() Record {
	out := r
	out.Fields = make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// Notification - запись из ленты уведомлений, дополнительно помеченная
// источником (продуктом, который ее породил).
type Notification struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

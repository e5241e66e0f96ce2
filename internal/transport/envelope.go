package transport

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"adminhub/internal/model"
)

// Pagination - серверная информация о страницах, если бэкенд ее прислал.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

// Envelope - нормализованный ответ сервера. Бэкенды продуктов отвечают
// неконсистентно: список лежит то в "data", то под именем ресурса,
// то тело само является массивом. Envelope прячет это от вызывающих.
type Envelope struct {
	Success    bool
	Message    string
	Pagination *Pagination

	bareList []json.RawMessage
	object   map[string]json.RawMessage
}

// ParseEnvelope разбирает тело ответа. Не-JSON тело и success=false
// превращаются в *TransportError, а не в панику или кривой результат.
func ParseEnvelope(status int, body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)

	if status >= 400 {
		return nil, &TransportError{Status: status, Message: serverMessage(trimmed)}
	}

	env := &Envelope{Success: true}

	switch {
	case len(trimmed) == 0:
		// 204 и пустые ответы на DELETE
		return env, nil
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &env.bareList); err != nil {
			return nil, &TransportError{Status: status, Message: ErrNotJSON.Error()}
		}
		return env, nil
	case trimmed[0] == '{':
		if err := json.Unmarshal(trimmed, &env.object); err != nil {
			return nil, &TransportError{Status: status, Message: ErrNotJSON.Error()}
		}
	default:
		return nil, &TransportError{Status: status, Message: ErrNotJSON.Error()}
	}

	if raw, ok := env.object["success"]; ok {
		var success bool
		if err := json.Unmarshal(raw, &success); err == nil && !success {
			return nil, &TransportError{Status: status, Message: serverMessage(trimmed)}
		}
	}

	if raw, ok := env.object["message"]; ok {
		_ = json.Unmarshal(raw, &env.Message)
	}
	if raw, ok := env.object["pagination"]; ok {
		var p Pagination
		if err := json.Unmarshal(raw, &p); err == nil {
			env.Pagination = &p
		}
	}

	return env, nil
}

// serverMessage достает сообщение об ошибке из известных ключей.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, s := range []string{payload.Error, payload.Message, payload.Detail} {
		if s != "" {
			return s
		}
	}
	return ""
}

// List возвращает список записей. Пробуем по порядку: "data", ключ с именем
// ресурса, затем первый попавшийся массив в объекте. Отсутствующее или
// кривое поле списка дает пустой срез, а не ошибку.
func (e *Envelope) List(resourceKey string) []model.Record {
	if e.bareList != nil {
		return decodeRecords(e.bareList)
	}
	if e.object == nil {
		return []model.Record{}
	}

	for _, key := range []string{"data", resourceKey} {
		if key == "" {
			continue
		}
		if raw, ok := e.object[key]; ok {
			if items, ok := rawList(raw); ok {
				return decodeRecords(items)
			}
		}
	}

	// Последняя попытка: единственный массив в объекте
	for key, raw := range e.object {
		if key == "success" || key == "pagination" {
			continue
		}
		if items, ok := rawList(raw); ok {
			return decodeRecords(items)
		}
	}

	return []model.Record{}
}

// One возвращает одиночную запись из конверта: по переданным ключам,
// либо сам объект, если он похож на запись.
func (e *Envelope) One(keys ...string) (model.Record, bool) {
	if e.object == nil {
		return model.Record{}, false
	}

	for _, key := range append(keys, "data") {
		if raw, ok := e.object[key]; ok {
			var obj map[string]any
			if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
				if rec, ok := recordFromMap(obj); ok {
					return rec, true
				}
			}
		}
	}

	var obj map[string]any
	full, _ := json.Marshal(e.object)
	if err := json.Unmarshal(full, &obj); err == nil {
		if rec, ok := recordFromMap(obj); ok {
			return rec, true
		}
	}

	return model.Record{}, false
}

// Int возвращает числовое поле конверта (например, unread_count).
func (e *Envelope) Int(key string) (int, bool) {
	raw, ok := e.object[key]
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// String возвращает строковое поле конверта (например, token).
func (e *Envelope) String(key string) (string, bool) {
	raw, ok := e.object[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func rawList(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

func decodeRecords(items []json.RawMessage) []model.Record {
	records := make([]model.Record, 0, len(items))
	for _, item := range items {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		if rec, ok := recordFromMap(obj); ok {
			records = append(records, rec)
		}
	}
	return records
}

// recordFromMap нормализует JSON-объект в Record: идентификатор из
// id/_id, временные метки из *_at в обоих стилях, остальное - в поля.
func recordFromMap(obj map[string]any) (model.Record, bool) {
	rec := model.Record{Fields: make(map[string]any, len(obj))}

	for key, value := range obj {
		switch key {
		case "id", "_id":
			rec.ID = stringValue(value)
		case "created_at", "createdAt":
			rec.CreatedAt = timeValue(value)
		case "updated_at", "updatedAt":
			rec.UpdatedAt = timeValue(value)
		default:
			rec.Fields[key] = value
		}
	}

	if rec.ID == "" {
		return model.Record{}, false
	}
	return rec, true
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// Бэкенды с числовыми ID
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func timeValue(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

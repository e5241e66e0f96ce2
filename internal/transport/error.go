package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrNotJSON - сервер прислал не-JSON тело (HTML-страница ошибки и т.п.)
	ErrNotJSON = errors.New("ответ сервера не является JSON")
)

// TransportError - ошибка уровня HTTP: не-2xx статус, не-JSON тело или
// конверт с success=false. Несет статус и сообщение сервера, если оно было.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ошибка сервера: %s (статус %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
}

// IsTransportError возвращает типизированную ошибку транспорта, если err ею является.
func IsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

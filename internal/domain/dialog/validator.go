package dialog

import (
	"fmt"
	"net/url"
	"strings"
)

const MinPasswordLen = 8

// FieldSpec описывает одно поле формы и его клиентские правила.
// Сервер валидирует повторно в любом случае.
type FieldSpec struct {
	Name      string
	Required  bool
	Sensitive bool // пароли и т.п.: не предзаполняется, пустое = "не менять"
	MinLen    int
	IsURL     bool
}

// Validate проверяет черновик перед отправкой. creating=true означает
// создание: обязательные чувствительные поля должны быть заполнены,
// на обновлении пустота допустима.
func Validate(draft map[string]any, schema []FieldSpec, creating bool) error {
	for _, spec := range schema {
		raw, ok := draft[spec.Name]
		value, _ := raw.(string)
		value = strings.TrimSpace(value)

		if spec.Required && (!ok || value == "") {
			if spec.Sensitive && !creating {
				continue // пустой пароль на обновлении = без изменений
			}
			return fmt.Errorf("поле %q обязательно", spec.Name)
		}

		if value == "" {
			continue
		}

		minLen := spec.MinLen
		if spec.Sensitive && minLen == 0 {
			minLen = MinPasswordLen
		}
		if minLen > 0 && len(value) < minLen {
			return fmt.Errorf("поле %q короче %d символов", spec.Name, minLen)
		}

		if spec.IsURL {
			u, err := url.Parse(value)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("поле %q должно быть корректным URL", spec.Name)
			}
		}
	}

	return nil
}

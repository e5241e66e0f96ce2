package store

import "time"

// Seed наполняет заглушку демо-данными: три коллекции с разными
// стилями конверта и пачка уведомлений.
func Seed(m *Memory, adminEmail, adminPassword string) error {
	if _, err := m.RegisterAdmin(adminEmail, "Demo Admin", adminPassword); err != nil {
		return err
	}

	m.AddCollection("users", StyleData)
	m.AddCollection("courses", StyleKeyed)
	m.AddCollection("orders", StyleBare)

	users := []map[string]any{
		{"name": "Анна Смирнова", "email": "anna@example.com", "role": "manager", "status": "active"},
		{"name": "Boris Petrov", "email": "boris@example.com", "role": "viewer", "status": "active"},
		{"name": "Clara Díaz", "email": "clara@example.com", "role": "admin", "status": "blocked"},
	}
	for _, u := range users {
		if _, err := m.Create("users", u); err != nil {
			return err
		}
	}

	courses := []map[string]any{
		{"title": "Go для начинающих", "status": "published", "students": float64(120)},
		{"title": "Advanced SQL", "status": "draft", "students": float64(0)},
	}
	for _, c := range courses {
		if _, err := m.Create("courses", c); err != nil {
			return err
		}
	}

	orders := []map[string]any{
		{"number": "ORD-1001", "status": "paid", "total": 49.90},
		{"number": "ORD-1002", "status": "pending", "total": 129.00},
	}
	for _, o := range orders {
		if _, err := m.Create("orders", o); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	m.AddNotification("Новый студент", "Записался на курс Go для начинающих", now.Add(-2*time.Hour))
	m.AddNotification("Платеж получен", "ORD-1001 оплачен", now.Add(-30*time.Minute))
	m.AddNotification("Попытка входа", "Неудачный вход с нового устройства", now.Add(-5*time.Minute))

	return nil
}

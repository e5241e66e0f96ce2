package types

type contextKey string

// AppKey - ключ, под которым root-команда кладет *admin.App в контекст.
const AppKey contextKey = "adminApp"

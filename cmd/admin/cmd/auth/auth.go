package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для операций с сессией администратора
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление сессией",
	Long:  `Вход в продукт и выход из него. У каждого продукта своя сессия.`,
}

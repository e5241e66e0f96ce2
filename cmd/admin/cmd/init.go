// cmd/admin/cmd/init.go
package cmd

import (
	"adminhub/cmd/admin/cmd/auth"
	"adminhub/cmd/admin/cmd/notify"
	"adminhub/cmd/admin/cmd/resource"
)

func init() {
	// Команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	// Команды работы с коллекциями
	rootCmd.AddCommand(resource.ResourceCmd)
	resource.ResourceCmd.AddCommand(resource.ListCmd)
	resource.ResourceCmd.AddCommand(resource.GetCmd)
	resource.ResourceCmd.AddCommand(resource.CreateCmd)
	resource.ResourceCmd.AddCommand(resource.UpdateCmd)
	resource.ResourceCmd.AddCommand(resource.DeleteCmd)
	resource.ResourceCmd.AddCommand(resource.ExportCmd)

	// Уведомления
	rootCmd.AddCommand(notify.NotifyCmd)
	notify.NotifyCmd.AddCommand(notify.ListCmd)
	notify.NotifyCmd.AddCommand(notify.ReadCmd)

	rootCmd.AddCommand(statusCmd)
}

// cmd/client/cmd/init.go
package cmd

import (
	"studentkeeper/cmd/client/cmd/student"
)

func init() {
	// Добавляем команды работы со студентами
	rootCmd.AddCommand(student.StudentCmd)
}

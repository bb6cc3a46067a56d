// @title PACE API
// @version 1.0
// @description Бэкенд трекера задач и самочувствия: задачи с повторениями, дневные логи, сводная статистика и календарь.
// @BasePath /api
package main

import "pace/internal/app"

func main() {
	app.Run()
}

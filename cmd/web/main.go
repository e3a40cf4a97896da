// @title           SkillSpace API
// @version         1.0
// @description     Бэкенд образовательной платформы: курсы, стажировки, лента активности, маркетплейс услуг.
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "skillspace_backend/internal/app"

func main() {
	app.Run()
}

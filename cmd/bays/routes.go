package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	deleteBays "bay-golang/http-server/bays/delete"
	getBays "bay-golang/http-server/bays/get"
	saveBays "bay-golang/http-server/bays/save"
	updateBays "bay-golang/http-server/bays/update"
	getEstimate "bay-golang/http-server/estimate/get"
	report_excel "bay-golang/http-server/generate-report/generate-excel"
	getProjects "bay-golang/http-server/projects/get"
	dragHandlers "bay-golang/http-server/reschedule"
	deleteSchedules "bay-golang/http-server/schedules/delete"
	getSchedules "bay-golang/http-server/schedules/get"
	getTimeline "bay-golang/http-server/timeline/get"
	"bay-golang/internal/config"
	"bay-golang/internal/middleware/auth"
	generate_excel "bay-golang/internal/service/generate-excel"
	"bay-golang/internal/service/reschedule"
	"bay-golang/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, dragService *reschedule.Service, reportService *generate_excel.ScheduleReportService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"}, // Разрешаем запросы с фронтенда
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Посты и их загрузка
	router.Get("/api/bays", getBays.GetBays(log, storage))
	router.Get("/api/schedules", getSchedules.GetSchedules(log, storage))

	// Пул проектов, из него тащат на диаграмму
	router.Get("/api/projects", getProjects.GetProjects(log, storage))
	router.Get("/api/projects/unassigned", getProjects.GetUnassignedProjects(log, storage))

	// Ось времени + раскладка плашек для текущего вида
	router.Get("/api/timeline", getTimeline.GetTimeline(log, storage))

	// Расчёт даты окончания по мощности поста
	router.Get("/api/estimate", getEstimate.GetEstimate(log, storage))

	// Протокол переноса: begin → hover → drop / cancel
	router.Post("/api/reschedule/begin", dragHandlers.BeginDrag(log, dragService))
	router.Post("/api/reschedule/hover", dragHandlers.HoverDrag(log, dragService))
	router.Post("/api/reschedule/drop", dragHandlers.DropDrag(log, dragService))
	router.Post("/api/reschedule/cancel", dragHandlers.CancelDrag(log, dragService))

	// Выгрузка сетки постов в excel
	router.Get("/api/report/excel", report_excel.GenerateScheduleExcel(log, reportService))

	// Управление постами — только под админом
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/bays", saveBays.SaveBayAdmin(log, storage))
	adminRouter.Put("/bays/{id}", updateBays.UpdateBayAdmin(log, storage))
	adminRouter.Delete("/bays/{id}", deleteBays.DeleteBayAdmin(log, storage))
	adminRouter.Delete("/schedules/{id}", deleteSchedules.DeleteScheduleAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	// Статика, vue
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("Папка фронтенда не найдена, статика не раздаётся", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	//SPA fallback: любой другой путь → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}

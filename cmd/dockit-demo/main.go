// @title         Dockit demo API
// @version       0.1.0
// @description   Example notes service showing the toolkit wired end to end

package main

import (
	"context"

	"dockit/httpkit"
	"dockit/platform/config"
	"dockit/platform/logger"
	"dockit/platform/store"
)

func main() {
	// service-scoped config for HTTP etc (DEMO_API_*)
	root := config.New()
	apiCfg := root.Prefix("DEMO_API_")

	// bring up logging early
	l := logger.Get()

	// open the platform store (reads MONGO_URI / MONGO_DATABASE)
	st, err := store.Open(context.Background(), store.FromConf(root))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads DEMO_API_PORT)
	srv := httpkit.NewServer(apiCfg)

	r := srv.Router()
	r.Use(
		httpkit.RequestID(),
		httpkit.RealIP(),
		httpkit.RecoverJSON,
		httpkit.AccessLog(httpkit.AccessLogOptions{}),
		httpkit.Heartbeat("/healthz"),
	)
	httpkit.MountSwagger(r, apiCfg.MayBool("SWAGGER", true), "/docs/doc.json")

	mountNotes(r, newNoteRepo(st))

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

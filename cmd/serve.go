package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/app"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	conn, err := load(cmd)
	if err != nil {
		return err
	}

	if v.GetString("app.env") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:     v.GetString("jwt.secret"),
		Issuer:     v.GetString("jwt.issuer"),
		AccessTTL:  v.GetDuration("jwt.access_ttl"),
		RefreshTTL: v.GetDuration("jwt.refresh_ttl"),
	})
	if err != nil {
		return fmt.Errorf("failed to setup token service, %w", err)
	}

	d := internal.NewDeps(conn, security.New(), tokens, newAlerter())

	cleanup, err := service.StartTokenCleanup(v.GetString("cleanup.schedule"), conn)
	if err != nil {
		return err
	}
	defer cleanup.Stop()

	router, closeRouter := app.NewRouter(d)
	defer func() {
		if err := closeRouter(); err != nil {
			zap.L().Warn("Failed to release router resources", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", v.GetInt("host.port")),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr))

		if v.GetBool("host.ssl.enabled") {
			errCh <- srv.ListenAndServeTLS(
				v.GetString("host.ssl.certificate_path"),
				v.GetString("host.ssl.certificate_key_path"),
			)
			return
		}

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped unexpectedly, %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown gracefully, %w", err)
	}

	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.Close()
	}

	return nil
}

// newAlerter returns the SMTP alerter when alert.mail.enabled is set.
// Otherwise alerts are only logged.
func newAlerter() service.Alerter {
	if !v.GetBool("alert.mail.enabled") {
		return service.LogAlerter{}
	}

	return service.NewMailAlerter(service.MailConfig{
		Host:     v.GetString("mail.host"),
		Port:     v.GetInt("mail.port"),
		Username: v.GetString("mail.username"),
		Password: v.GetString("mail.password"),
		Sender:   v.GetString("mail.sender"),
	})
}

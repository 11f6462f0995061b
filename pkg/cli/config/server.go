package config

import (
	"log/slog"
	"net/http"

	"github.com/govpulse/govpulse/frontend"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr        string
	NoDashboard bool
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8000",
			Sources:     cli.EnvVars("GOVPULSE_ADDR"),
			Destination: &s.Addr,
		},
		&cli.BoolFlag{
			Name:        "no-dashboard",
			Usage:       "Do not serve the embedded dashboard under /dashboard/",
			Sources:     cli.EnvVars("GOVPULSE_NO_DASHBOARD"),
			Destination: &s.NoDashboard,
		},
	}
}

// Dashboard returns the embedded dashboard filesystem, or nil when it is
// disabled or not built
func (s *Server) Dashboard() http.FileSystem {
	if s.NoDashboard {
		return nil
	}
	fsys, err := frontend.GetHTTPFS()
	if err != nil {
		return nil
	}
	return fsys
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Bool("dashboard", !s.NoDashboard),
	)
}

package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/wellbeing/internal/app/api/server"
	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/app/service/statistics"
	"github.com/fatflowers/wellbeing/internal/app/service/usage"
	usagelog "github.com/fatflowers/wellbeing/internal/app/service/usage_log"
	"github.com/fatflowers/wellbeing/internal/storage/backend"
	"github.com/fatflowers/wellbeing/pkg/config"
	"github.com/fatflowers/wellbeing/pkg/logger"
	"github.com/fatflowers/wellbeing/pkg/metrics"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	metrics.Module,
	backend.Module,
	usagelog.Module,
	usage.Module,
	feather.Module,
	statistics.Module,
	server.Module,
)

package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"wordfreq/internal/domain"
)

// newLogger writes leveled text logs to w, keeping stdout for reports.
func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: logging level: %v", domain.ErrInvalidArgument, err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return log, nil
}

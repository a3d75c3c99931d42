package port

import "wordfreq/internal/domain"

type Reporter interface {
	Report(result domain.RankedResult) error
}

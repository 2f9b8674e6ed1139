package jobqueue

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/subscription"
)

// processBillingSweepJob bills every active subscription whose billing date
// has arrived. The subscription service handles each record independently,
// so one bad record never blocks the sweep.
func (q *Queue) processBillingSweepJob(job *Job) error {
	payload, err := BillingSweepJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid billing sweep payload: %w", err)
	}

	day := payload.Day
	if day.IsZero() {
		day = time.Now()
	}

	svc := subscription.NewServiceFromDB(database.GetDB())
	processed, err := svc.ProcessDue(day)
	if err != nil {
		return fmt.Errorf("billing sweep failed: %w", err)
	}

	log.Infof("[JobQueue] Billing sweep for %s processed %d subscriptions", day.Format("2006-01-02"), processed)
	return nil
}

package addressbook

import (
	"context"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

const (
	enrichTimeout = 5 * time.Second

	// New records start low; each confirmed delivery adds a step, bounded.
	baseConfidence = 20
	confidenceStep = 10
	maxConfidence  = 100
)

// candidateSource adapts address rows to fuzzy.Source.
type candidateSource []entity.AddressRecord

func (s candidateSource) String(i int) string { return strings.ToLower(s[i].Text) }
func (s candidateSource) Len() int            { return len(s) }

// Enricher maintains the shared address-quality dataset off confirmed
// deliveries. Best effort by contract: every failure is logged and swallowed,
// and the write happens off the caller's goroutine so it can never delay a
// status transition.
type Enricher struct {
	addressRepo repo.Address
	log         *zap.Logger
}

func NewEnricher(addressRepo repo.Address, log *zap.Logger) *Enricher {
	return &Enricher{
		addressRepo: addressRepo,
		log:         log.Named("addressbook"),
	}
}

func (e *Enricher) Enrich(text string, landmark string, city string, state string) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(city) == "" || strings.TrimSpace(state) == "" {
		return
	}

	go e.enrich(text, landmark, city, state)
}

func (e *Enricher) enrich(text string, landmark string, city string, state string) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
	defer cancel()

	candidates, err := e.addressRepo.GetAddressCandidates(ctx, city, state)
	if err != nil {
		e.log.Warn("address candidate lookup failed", zap.String("city", city), zap.Error(err))
		return
	}

	matches := fuzzy.FindFrom(strings.ToLower(text), candidateSource(candidates))
	if len(matches) > 0 && matches[0].Score > 0 {
		matched := candidates[matches[0].Index]
		confidence := matched.Confidence + confidenceStep
		if confidence > maxConfidence {
			confidence = maxConfidence
		}

		if err := e.addressRepo.RecordAddressDelivery(ctx, matched.Id, confidence); err != nil {
			e.log.Warn("address enrichment failed", zap.String("address_id", matched.Id.String()), zap.Error(err))
		}

		return
	}

	record := entity.AddressRecord{
		Text:          text,
		Landmark:      landmark,
		City:          city,
		State:         state,
		DeliveryCount: 1,
		Confidence:    baseConfidence,
	}
	if _, err := e.addressRepo.InsertAddress(ctx, &record); err != nil {
		e.log.Warn("address insert failed", zap.String("city", city), zap.Error(err))
	}
}

// Package studio implements the two-phase generation workflow: a content
// package from a brief, then visual assets for that package.
package studio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"campaigner/internal/domain"
	models "campaigner/internal/domain/models/studio"
	studioSvc "campaigner/internal/domain/services/studio"
	"campaigner/internal/service/studio/normalize"

	"github.com/google/uuid"
)

const defaultClearDelay = 4 * time.Second

// Roster reports which agents light up for the active agent id
type Roster interface {
	Status(activeID string) []models.AgentStatus
}

// Config wires the workflow to its agents and timing.
// Now, NewID and AfterFunc default to the real clock, uuid and time.AfterFunc.
type Config struct {
	ContentAgentID string
	ImageAgentID   string
	ClearDelay     time.Duration

	Now       func() time.Time
	NewID     func() string
	AfterFunc AfterFunc
}

// Service is the application-state object. All published state is guarded by
// mu; transport calls and history writes run outside the lock and the last
// result to land wins.
type Service struct {
	transport studioSvc.AgentTransport
	history   studioSvc.HistoryStore
	roster    Roster
	cfg       Config
	logger    *slog.Logger

	mu             sync.Mutex
	brief          models.Brief
	pkg            *models.ContentPackage
	images         []models.ImageAsset
	meta           *models.ImageMeta
	entryID        string // history entry the published package belongs to
	state          models.WorkflowState
	activeAgentID  string
	banner         banner
	contentPending int
	imagePending   int
}

var _ studioSvc.WorkflowService = (*Service)(nil)

// NewService creates the workflow service
func NewService(
	transport studioSvc.AgentTransport,
	history studioSvc.HistoryStore,
	roster Roster,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.ClearDelay <= 0 {
		cfg.ClearDelay = defaultClearDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = DefaultAfterFunc
	}

	return &Service{
		transport: transport,
		history:   history,
		roster:    roster,
		cfg:       cfg,
		logger:    logger,
		brief:     models.NewDraftBrief(),
		images:    []models.ImageAsset{},
		state:     models.StateIdle,
	}
}

// SubmitBrief runs phase 1. An empty topic fails with a ValidationError
// before any transport call.
func (s *Service) SubmitBrief(ctx context.Context, brief models.Brief) (*models.Snapshot, error) {
	brief = brief.Normalized()

	if err := validateBrief(brief); err != nil {
		s.mu.Lock()
		s.brief = brief
		s.banner.show("", err.Error())
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.brief = brief
	s.pkg = nil
	s.images = []models.ImageAsset{}
	s.meta = nil
	s.entryID = ""
	s.state = models.StateGeneratingContent
	s.contentPending++
	s.activeAgentID = s.cfg.ContentAgentID
	s.banner.show(MsgGeneratingContent, "")
	s.mu.Unlock()

	s.logger.Debug("submitting brief",
		"channel", brief.Channel,
		"topic", brief.Topic,
		"keywords", len(brief.Keywords),
	)

	env, invokeErr := s.transport.Invoke(ctx, ContentPrompt(brief), s.cfg.ContentAgentID)

	s.mu.Lock()
	entry, err := s.completeContentLocked(brief, env, invokeErr)
	s.finishLocked(&s.contentPending)
	var snap *models.Snapshot
	if err == nil {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.history.Append(ctx, entry)
	snap.HistoryCount = s.history.Len()
	return snap, nil
}

func (s *Service) completeContentLocked(brief models.Brief, env *models.Envelope, invokeErr error) (models.HistoryEntry, error) {
	if err := envelopeError(env, invokeErr, MsgContentFailed, MsgContentUnexpected); err != nil {
		s.logger.Warn("content generation failed", "error", err, "cause", invokeErr)
		s.state = models.StateContentFailed
		s.banner.show("", err.Error())
		return models.HistoryEntry{}, err
	}

	data := normalize.Decode(env.ResultValue())
	if !normalize.Present(data) {
		s.logger.Warn("content agent returned no usable payload")
		s.state = models.StateContentFailed
		s.banner.show("", MsgUnexpectedFormat)
		return models.HistoryEntry{}, &domain.FormatError{Message: MsgUnexpectedFormat}
	}

	pkg := normalize.ToContentPackage(data)
	if pkg.PackageTitle == "" {
		pkg.PackageTitle = brief.Topic
	}
	if pkg.ChannelType == "" {
		pkg.ChannelType = brief.Channel
	}
	entry := models.HistoryEntry{
		ID:          s.cfg.NewID(),
		Timestamp:   s.cfg.Now().UTC(),
		Brief:       brief.Clone(),
		PackageData: pkg.Clone(),
		Images:      []models.ImageAsset{},
	}

	s.pkg = &pkg
	s.images = []models.ImageAsset{}
	s.meta = nil
	s.entryID = entry.ID
	s.state = models.StateContentReady
	s.banner.show(MsgContentReady, "")

	s.logger.Info("content package generated",
		"entry_id", entry.ID,
		"package_title", pkg.PackageTitle,
		"word_count", pkg.Content.WordCount,
	)
	return entry, nil
}

// RequestGraphics runs phase 2 for the published package. Without a package
// it returns the current snapshot and does nothing.
func (s *Service) RequestGraphics(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	if s.pkg == nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	pkg := s.pkg.Clone()
	brief := s.brief.Clone()
	entryID := s.entryID
	s.state = models.StateGeneratingImages
	s.imagePending++
	s.activeAgentID = s.cfg.ImageAgentID
	s.banner.show(MsgGeneratingImages, "")
	s.mu.Unlock()

	env, invokeErr := s.transport.Invoke(ctx, GraphicsPrompt(pkg, brief), s.cfg.ImageAgentID)

	s.mu.Lock()
	patch, err := s.completeGraphicsLocked(entryID, env, invokeErr)
	s.finishLocked(&s.imagePending)
	var snap *models.Snapshot
	if err == nil {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if patch != nil && !s.history.PatchHead(ctx, *patch) {
		s.logger.Debug("history head moved, graphics not recorded", "entry_id", entryID)
	}
	return snap, nil
}

// completeGraphicsLocked publishes the phase-2 result and returns the history
// patch to apply, if any. A newer phase-1 call still in flight owns the
// workflow state, so it is left alone.
func (s *Service) completeGraphicsLocked(entryID string, env *models.Envelope, invokeErr error) (*models.HistoryPatch, error) {
	if err := envelopeError(env, invokeErr, MsgImagesFailed, MsgImagesUnexpected); err != nil {
		s.logger.Warn("graphics generation failed", "error", err, "cause", invokeErr)
		if s.contentPending == 0 {
			s.state = models.StateImagesFailed
		}
		s.banner.show("", err.Error())
		return nil, err
	}

	patch := models.HistoryPatch{EntryID: entryID}

	assets, produced := normalize.ToImageAssets(env.ArtifactValue())
	if produced {
		s.images = assets
		patch.Images = assets
	}

	if data := normalize.Decode(env.ResultValue()); normalize.Present(data) {
		meta := normalize.ToImageMeta(data)
		s.meta = &meta
		patch.ImageMeta = &meta
	}

	if s.contentPending == 0 {
		s.state = models.StateImagesReady
	}
	s.banner.show(MsgImagesReady, "")

	s.logger.Info("graphics generated", "entry_id", entryID, "images", len(s.images), "has_meta", s.meta != nil)

	if (patch.Images == nil && patch.ImageMeta == nil) || entryID == "" {
		return nil, nil
	}
	return &patch, nil
}

// LoadHistoryEntry publishes a past generation as the current state
func (s *Service) LoadHistoryEntry(ctx context.Context, id string) (*models.Snapshot, error) {
	entry, ok := s.history.Get(id)
	if !ok {
		return nil, &domain.NotFoundError{Message: MsgHistoryEntryAbsent}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pkg := entry.PackageData
	s.brief = entry.Brief
	s.pkg = &pkg
	s.images = models.CloneImages(entry.Images)
	s.meta = entry.ImageMeta
	s.entryID = entry.ID
	s.state = models.StateContentReady
	if len(s.images) > 0 || s.meta != nil {
		s.state = models.StateImagesReady
	}
	s.banner.dismiss()

	return s.snapshotLocked(), nil
}

// DeleteHistoryEntry removes a past generation. The published package, if it
// came from that entry, stays published but is no longer linked to history.
func (s *Service) DeleteHistoryEntry(ctx context.Context, id string) error {
	if !s.history.Remove(ctx, id) {
		return &domain.NotFoundError{Message: MsgHistoryEntryAbsent}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == id {
		s.entryID = ""
	}
	return nil
}

// QueryHistory filters the history log
func (s *Service) QueryHistory(search, channel string) []models.HistoryEntry {
	return s.history.Query(search, channel)
}

// UpdateBody replaces the published package's body. History keeps the
// generated text.
func (s *Service) UpdateBody(body string) (*models.Snapshot, error) {
	if err := validateBody(body); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pkg == nil {
		return nil, &domain.NotFoundError{Message: MsgNoPackage}
	}
	pkg := s.pkg.WithBody(body)
	s.pkg = &pkg
	return s.snapshotLocked(), nil
}

// DismissBanner clears the status and error messages now
func (s *Service) DismissBanner() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.banner.dismiss()
	return s.snapshotLocked()
}

// Snapshot returns a detached copy of the published state
func (s *Service) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// envelopeError classifies a transport result. A raised error gets the
// generic message; a reported failure uses the agent's text or the fallback.
func envelopeError(env *models.Envelope, invokeErr error, fallback, unexpected string) error {
	if invokeErr != nil {
		return &domain.TransportError{Message: unexpected, Cause: invokeErr}
	}
	if env == nil {
		return &domain.TransportError{Message: unexpected}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fallback
		}
		return &domain.TransportError{Message: msg}
	}
	return nil
}

// finishLocked ends one in-flight phase call: the active agent indicator
// follows whatever is still pending and the banner is scheduled to clear.
func (s *Service) finishLocked(pending *int) {
	*pending = max(*pending-1, 0)

	switch {
	case s.contentPending > 0:
		s.activeAgentID = s.cfg.ContentAgentID
	case s.imagePending > 0:
		s.activeAgentID = s.cfg.ImageAgentID
	default:
		s.activeAgentID = ""
	}

	s.scheduleClearLocked()
}

func (s *Service) scheduleClearLocked() {
	s.banner.cancel()
	seq := s.banner.seq
	s.banner.stop = s.cfg.AfterFunc(s.cfg.ClearDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.banner.seq != seq {
			return
		}
		s.banner.status = ""
		s.banner.err = ""
		s.banner.stop = nil
	})
}

func (s *Service) snapshotLocked() *models.Snapshot {
	snap := &models.Snapshot{
		CurrentBrief:     s.brief.Clone(),
		CurrentImages:    models.CloneImages(s.images),
		CurrentImageMeta: models.CloneImageMeta(s.meta),
		CurrentEntryID:   s.entryID,
		WorkflowState:    s.state,
		ActiveAgentID:    s.activeAgentID,
		StatusMessage:    s.banner.status,
		ErrorMessage:     s.banner.err,
		ContentLoading:   s.contentPending > 0,
		ImageLoading:     s.imagePending > 0,
		HistoryCount:     s.history.Len(),
	}
	if s.pkg != nil {
		pkg := s.pkg.Clone()
		snap.CurrentPackage = &pkg
	}
	if s.roster != nil {
		snap.Agents = s.roster.Status(s.activeAgentID)
	}
	return snap
}

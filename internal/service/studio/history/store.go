// Package history keeps the most-recent-first log of past generations and
// mirrors it into a durable slot after every mutation.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	models "campaigner/internal/domain/models/studio"
	"campaigner/internal/domain/repositories"
	studioSvc "campaigner/internal/domain/services/studio"
	"campaigner/internal/service/studio/normalize"
)

const defaultWriteTimeout = 5 * time.Second

// Store implements studioSvc.HistoryStore.
// The in-memory log is authoritative; the slot is advisory durability.
type Store struct {
	slot     repositories.Slot
	key      string
	capacity int
	logger   *slog.Logger

	writeTimeout time.Duration

	mu      sync.RWMutex
	entries []models.HistoryEntry
	version uint64

	// writeMu orders slot writes; written is the newest version sent to the slot
	writeMu sync.Mutex
	written uint64
}

var _ studioSvc.HistoryStore = (*Store)(nil)

// NewStore creates a history store over slot[key].
// capacity bounds the log (oldest dropped on append); 0 means unbounded.
func NewStore(slot repositories.Slot, key string, capacity int, logger *slog.Logger) *Store {
	return &Store{
		slot:         slot,
		key:          key,
		capacity:     max(capacity, 0),
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
		entries:      []models.HistoryEntry{},
	}
}

// Load reads the slot once. A missing slot, unparsable content or a
// non-array value all produce an empty log.
func (s *Store) Load(ctx context.Context) {
	data, err := s.slot.Read(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []models.HistoryEntry{}
	if err != nil {
		if !errors.Is(err, repositories.ErrSlotEmpty) {
			s.logger.Warn("history slot read failed", "key", s.key, "error", err)
		}
		return
	}

	entries, skipped, ok := decodeLog(data)
	if !ok {
		s.logger.Warn("history slot unreadable, starting empty", "key", s.key)
		return
	}
	if skipped > 0 {
		s.logger.Warn("skipped unreadable history entries", "key", s.key, "skipped", skipped)
	}
	if s.capacity > 0 && len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
	s.logger.Debug("history loaded", "key", s.key, "entries", len(entries))
}

// Append prepends entry and persists the log
func (s *Store) Append(ctx context.Context, entry models.HistoryEntry) {
	s.mu.Lock()
	next := make([]models.HistoryEntry, 0, len(s.entries)+1)
	next = append(next, entry.Clone())
	next = append(next, s.entries...)
	if s.capacity > 0 && len(next) > s.capacity {
		next = next[:s.capacity]
	}
	s.entries = next
	version, data := s.encodeLocked()
	s.mu.Unlock()

	s.persist(ctx, version, data)
}

// PatchHead writes images/imageMeta onto the head entry
func (s *Store) PatchHead(ctx context.Context, patch models.HistoryPatch) bool {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return false
	}
	head := s.entries[0]
	if patch.EntryID != "" && head.ID != patch.EntryID {
		s.mu.Unlock()
		return false
	}

	if patch.Images != nil {
		head.Images = models.CloneImages(patch.Images)
	}
	if patch.ImageMeta != nil {
		head.ImageMeta = models.CloneImageMeta(patch.ImageMeta)
	}
	s.entries[0] = head
	version, data := s.encodeLocked()
	s.mu.Unlock()

	s.persist(ctx, version, data)
	return true
}

// Remove deletes the entry with the given id; order of the rest is kept
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	next := make([]models.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(s.entries) {
		s.mu.Unlock()
		return false
	}
	s.entries = next
	version, data := s.encodeLocked()
	s.mu.Unlock()

	s.persist(ctx, version, data)
	return true
}

// Query returns entries whose package title or brief topic contains search
// (case-insensitive) and whose channel equals channel, unless channel is
// empty or "all". The backing log is never modified.
func (s *Store) Query(search, channel string) []models.HistoryEntry {
	needle := strings.ToLower(strings.TrimSpace(search))
	channel = strings.TrimSpace(channel)
	filterChannel := channel != "" && channel != models.ChannelAll

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.HistoryEntry{}
	for _, e := range s.entries {
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.PackageData.PackageTitle), needle) &&
			!strings.Contains(strings.ToLower(e.Brief.Topic), needle) {
			continue
		}
		if filterChannel && entryChannel(e) != channel {
			continue
		}
		out = append(out, e.Clone())
	}
	return out
}

// Get returns a copy of the entry with the given id
func (s *Store) Get(id string) (models.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.HistoryEntry{}, false
}

// Entries returns a copy of the whole log
func (s *Store) Entries() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HistoryEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// encodeLocked serializes the log and stamps it with a new version.
// Caller must hold s.mu for writing.
func (s *Store) encodeLocked() (uint64, []byte) {
	s.version++
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Warn("history marshal failed", "error", err)
		return s.version, nil
	}
	return s.version, data
}

// persist writes one encoded log without holding s.mu, so readers never wait
// on the slot. A version older than the last one written is dropped.
// Failures are logged and swallowed.
func (s *Store) persist(ctx context.Context, version uint64, data []byte) {
	if data == nil {
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if version <= s.written {
		return
	}
	s.written = version

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
	defer cancel()

	if err := s.slot.Write(ctx, s.key, data); err != nil {
		s.logger.Warn("history persist failed", "key", s.key, "version", version, "error", err)
	}
}

func entryChannel(e models.HistoryEntry) string {
	if e.PackageData.ChannelType != "" {
		return e.PackageData.ChannelType
	}
	return e.Brief.Channel
}

// persistedEntry decodes the outer entry strictly and the generated parts loosely
type persistedEntry struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Brief       models.Brief    `json:"brief"`
	PackageData json.RawMessage `json:"packageData"`
	Images      json.RawMessage `json:"images"`
	ImageMeta   json.RawMessage `json:"imageMeta"`
}

// decodeLog parses the persisted log entry by entry.
// ok is false when data is not a JSON array.
func decodeLog(data []byte) (entries []models.HistoryEntry, skipped int, ok bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, 0, false
	}

	entries = make([]models.HistoryEntry, 0, len(items))
	for _, item := range items {
		var p persistedEntry
		if err := json.Unmarshal(item, &p); err != nil || p.ID == "" {
			skipped++
			continue
		}

		var pkg any
		if len(p.PackageData) > 0 {
			_ = json.Unmarshal(p.PackageData, &pkg)
		}
		images, _ := normalize.ToImageAssets(p.Images)

		entry := models.HistoryEntry{
			ID:          p.ID,
			Timestamp:   p.Timestamp,
			Brief:       p.Brief.Clone(),
			PackageData: normalize.ToContentPackage(pkg),
			Images:      images,
		}
		var meta any
		if len(p.ImageMeta) > 0 && json.Unmarshal(p.ImageMeta, &meta) == nil {
			if _, isMap := meta.(map[string]any); isMap {
				m := normalize.ToImageMeta(meta)
				entry.ImageMeta = &m
			}
		}
		entries = append(entries, entry)
	}
	return entries, skipped, true
}

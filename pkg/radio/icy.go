// Package radio reads the now-playing title from an ICY (Shoutcast)
// stream and publishes it as the music block of the display state.
package radio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/state"
)

// LiveProgress is the progress shown for a live stream, which has no
// natural position.
const LiveProgress = 30

var (
	// ErrNotConfigured indicates that no stream URL is set.
	ErrNotConfigured = errors.New("stream URL is empty")

	// ErrNoMetadata indicates the server does not interleave ICY metadata.
	ErrNoMetadata = errors.New("stream has no ICY metadata")

	// ErrNoTitle indicates the metadata block carried no StreamTitle.
	ErrNoTitle = errors.New("no stream title")
)

// Settings returns the stream URL and the station name used as the artist
// when the title has no artist part.
type Settings func() (streamURL, station string)

// Track is a parsed stream title.
type Track struct {
	Title  string
	Artist string
}

// Reader fetches ICY metadata.
type Reader struct {
	settings   Settings
	httpClient *http.Client
}

// NewReader creates a reader. A nil client uses a client with a 15 second
// timeout.
func NewReader(settings Settings, hc *http.Client) *Reader {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Reader{settings: settings, httpClient: hc}
}

// Current connects to the stream, reads the first metadata block and
// returns the track it names.
func (r *Reader) Current(ctx context.Context) (Track, error) {
	streamURL, station := r.settings()
	streamURL = strings.TrimSpace(streamURL)
	if streamURL == "" {
		return Track{}, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return Track{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Icy-MetaData", "1")
	req.Header.Set("User-Agent", "UmaAI/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Track{}, fmt.Errorf("connecting to stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Track{}, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}
	metaint, err := strconv.Atoi(resp.Header.Get("Icy-Metaint"))
	if err != nil || metaint <= 0 {
		return Track{}, ErrNoMetadata
	}

	raw, err := ReadMetadata(resp.Body, metaint)
	if err != nil {
		return Track{}, err
	}
	title, ok := StreamTitle(raw)
	if !ok {
		return Track{}, ErrNoTitle
	}
	return ParseTitle(title, station), nil
}

// ReadMetadata skips metaint bytes of audio and returns the metadata block
// that follows, with NUL padding removed.
func ReadMetadata(body io.Reader, metaint int) (string, error) {
	if _, err := io.CopyN(io.Discard, body, int64(metaint)); err != nil {
		return "", fmt.Errorf("reading audio: %w", err)
	}

	var size [1]byte
	if _, err := io.ReadFull(body, size[:]); err != nil {
		return "", fmt.Errorf("reading metadata length: %w", err)
	}

	block := make([]byte, int(size[0])*16)
	if _, err := io.ReadFull(body, block); err != nil {
		return "", fmt.Errorf("reading metadata: %w", err)
	}
	return string(bytes.ReplaceAll(block, []byte{0}, nil)), nil
}

// StreamTitle extracts the value of StreamTitle='...' from a metadata
// block. An empty title counts as absent.
func StreamTitle(meta string) (string, bool) {
	const key = "StreamTitle='"
	i := strings.Index(meta, key)
	if i < 0 {
		return "", false
	}
	rest := meta[i+len(key):]
	end := strings.IndexByte(rest, '\'')
	if end <= 0 {
		return "", false
	}
	return rest[:end], true
}

// ParseTitle splits "Artist - Title". Without a separator the whole value
// is the title and the station is the artist.
func ParseTitle(raw, station string) Track {
	parts := strings.Split(raw, " - ")
	if len(parts) > 1 && parts[1] != "" {
		return Track{Title: parts[1], Artist: parts[0]}
	}
	return Track{Title: parts[0], Artist: station}
}

// Refresher publishes the current track to the store.
type Refresher struct {
	reader *Reader
	store  *state.Store
}

// NewRefresher creates a refresher.
func NewRefresher(reader *Reader, store *state.Store) *Refresher {
	return &Refresher{reader: reader, store: store}
}

// Refresh reads the stream title and merges it into the music block. On
// any failure the music block is left unchanged.
func (r *Refresher) Refresh(ctx context.Context) error {
	track, err := r.reader.Current(ctx)
	switch {
	case errors.Is(err, ErrNotConfigured), errors.Is(err, ErrNoMetadata), errors.Is(err, ErrNoTitle):
		log.Debug().Err(err).Str("provider", "icy").Msg("No stream title")
		return nil
	case err != nil:
		return err
	}

	streamURL, _ := r.reader.settings()
	r.store.Update(func(next *state.Snapshot) {
		next.Music = state.Music{
			Title:           track.Title,
			Artist:          track.Artist,
			ProgressPercent: LiveProgress,
			StreamURL:       strings.TrimSpace(streamURL),
		}
	})
	log.Debug().Str("title", track.Title).Str("artist", track.Artist).Msg("Stream title updated")
	return nil
}

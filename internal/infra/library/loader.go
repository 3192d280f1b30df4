// Package library loads a playlist from a directory of audio files.
package library

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	zlog "github.com/rs/zerolog/log"
	"github.com/tcolgate/mp3"

	"github.com/vara-s830/playerd/internal/domain/playlist"
	"github.com/vara-s830/playerd/internal/domain/track"
)

// supported audio file extensions
var supportedExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".wav":  true,
}

// Load scans a directory (non-recursive, name order) and builds a playlist.
// Unreadable files are logged and skipped; a missing tag or duration is not
// an error, the track falls back to its file name and a zero duration.
func Load(dir string) (playlist.Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return playlist.Playlist{}, errors.Wrapf(err, "failed to read library dir %s", dir)
	}

	pl := playlist.Playlist{Name: filepath.Base(dir)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExts[ext] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		trk, err := buildTrack(path, ext)
		if err != nil {
			zlog.Warn().Msgf("skipping %s: %v", path, err)
			continue
		}
		pl.Tracks = append(pl.Tracks, trk)
	}

	zlog.Info().Msgf("loaded library: dir=%s tracks=%d total=%s", dir, pl.Len(), pl.TotalDuration())
	return pl, nil
}

func buildTrack(path, ext string) (track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return track.Track{}, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	trk := track.Track{Path: path, Title: filepath.Base(path)}

	if m, err := tag.ReadFrom(f); err == nil {
		if m.Title() != "" {
			trk.Title = m.Title()
		}
		trk.Artist = m.Artist()
		trk.Album = m.Album()
	} else {
		zlog.Debug().Msgf("no readable tags in %s: %v", path, err)
	}

	dur, err := fileDuration(path, ext)
	if err != nil {
		zlog.Debug().Msgf("could not determine duration of %s: %v", path, err)
	}
	trk.Duration = dur

	return trk, nil
}

// fileDuration computes the playable duration of an audio file. For mp3 a
// frame walk avoids decoding the audio; other formats are decoded to learn
// their sample count.
func fileDuration(path, ext string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if ext == ".mp3" {
		return mp3Duration(f)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		return 0, errors.Newf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// mp3Duration sums mp3 frame durations.
func mp3Duration(r io.Reader) (time.Duration, error) {
	dec := mp3.NewDecoder(r)

	var total time.Duration
	var frame mp3.Frame
	skipped := 0
	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}
		total += frame.Duration()
	}
}

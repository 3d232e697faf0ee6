// Package player exposes MediaMonkey's playback surface: state snapshots,
// transport control, volume, seeking, and the Now Playing queue. Every
// field is read through the safe accessors — the player object graph
// changes shape between application versions.
package player

import (
	"fmt"

	"github.com/osvalr/mmbridge/pkg/automation"
)

// Track is the metadata of one library entry. Fields the application does
// not expose read as their zero value.
type Track struct {
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	AlbumArtist string `json:"album_artist,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Year        int    `json:"year,omitempty"`
	TrackNumber int    `json:"track_number,omitempty"`
	DurationMS  int    `json:"duration_ms,omitempty"`
	Path        string `json:"path,omitempty"`
	Rating      int    `json:"rating,omitempty"`
	SongID      int    `json:"song_id,omitempty"`
}

// State is a point-in-time snapshot of the player.
type State struct {
	Playing          bool   `json:"is_playing"`
	Paused           bool   `json:"is_paused"`
	Shuffle          bool   `json:"shuffle"`
	Repeat           bool   `json:"repeat"`
	StopAfterCurrent bool   `json:"stop_after_current"`
	Volume           int    `json:"volume"`
	PositionMS       int    `json:"playback_time_ms"`
	TrackLengthMS    int    `json:"track_length_ms,omitempty"`
	CurrentIndex     int    `json:"current_index"`
	QueueSize        int    `json:"now_playing_size"`
	Track            *Track `json:"track,omitempty"`
}

// Action is a transport command.
type Action string

const (
	ActionPlay             Action = "play"
	ActionPause            Action = "pause"
	ActionToggle           Action = "toggle"
	ActionStop             Action = "stop"
	ActionNext             Action = "next"
	ActionPrevious         Action = "previous"
	ActionShuffle          Action = "shuffle"
	ActionRepeat           Action = "repeat"
	ActionStopAfterCurrent Action = "stop_after_current"
)

// ParseAction validates a caller-supplied action name.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPlay, ActionPause, ActionToggle, ActionStop, ActionNext,
		ActionPrevious, ActionShuffle, ActionRepeat, ActionStopAfterCurrent:
		return Action(s), nil
	}
	return "", fmt.Errorf("unsupported playback action %q", s)
}

func playerObject(sess automation.Session) (automation.Object, error) {
	p, ok := automation.Child(sess.App(), "Player")
	if !ok {
		return nil, fmt.Errorf("application exposes no Player object")
	}
	return p, nil
}

// Snapshot captures the player state. Absent or unreadable fields fall
// back to zero values rather than failing the whole snapshot.
func Snapshot(sess automation.Session) (*State, error) {
	p, err := playerObject(sess)
	if err != nil {
		return nil, err
	}

	st := &State{
		Playing:          automation.Bool(p, "isPlaying", false),
		Paused:           automation.Bool(p, "isPaused", false),
		Shuffle:          automation.Bool(p, "isShuffle", false),
		Repeat:           automation.Bool(p, "isRepeat", false),
		StopAfterCurrent: automation.Bool(p, "StopAfterCurrent", false),
		Volume:           automation.Int(p, "Volume", 0),
		PositionMS:       automation.Int(p, "PlaybackTime", 0),
		CurrentIndex:     automation.Int(p, "CurrentSongIndex", -1),
	}

	if song, ok := automation.Child(p, "CurrentSong"); ok {
		st.Track = trackFrom(song)
		st.TrackLengthMS = automation.Int(song, "SongLength", 0)
	}
	if list, ok := automation.Child(p, "CurrentSongList"); ok {
		st.QueueSize = automation.Int(list, "Count", 0)
	}
	return st, nil
}

// Control dispatches a transport action and returns the post-action state.
func Control(sess automation.Session, action Action) (*State, error) {
	p, err := playerObject(sess)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionPlay:
		_, err = p.Call("Play")
	case ActionPause:
		_, err = p.Call("Pause")
	case ActionToggle:
		if automation.Bool(p, "isPlaying", false) {
			_, err = p.Call("Pause")
		} else {
			_, err = p.Call("Play")
		}
	case ActionStop:
		_, err = p.Call("Stop")
	case ActionNext:
		_, err = p.Call("Next")
	case ActionPrevious:
		_, err = p.Call("Previous")
	case ActionShuffle:
		cur := automation.Bool(p, "isShuffle", false)
		err = p.SetProp("isShuffle", !cur)
	case ActionRepeat:
		cur := automation.Bool(p, "isRepeat", false)
		err = p.SetProp("isRepeat", !cur)
	case ActionStopAfterCurrent:
		cur := automation.Bool(p, "StopAfterCurrent", false)
		err = p.SetProp("StopAfterCurrent", !cur)
	default:
		return nil, fmt.Errorf("unsupported playback action %q", action)
	}
	if err != nil {
		return nil, fmt.Errorf("playback action %s: %w", action, err)
	}
	return Snapshot(sess)
}

// SetVolume clamps level to 0–100 and sets the master volume.
func SetVolume(sess automation.Session, level int) (*State, error) {
	p, err := playerObject(sess)
	if err != nil {
		return nil, err
	}
	if level < 0 {
		level = 0
	} else if level > 100 {
		level = 100
	}
	if err := p.SetProp("Volume", level); err != nil {
		return nil, fmt.Errorf("set volume: %w", err)
	}
	return Snapshot(sess)
}

// Seek jumps to a position (milliseconds) within the active track.
// Negative positions clamp to 0.
func Seek(sess automation.Session, positionMS int) (*State, error) {
	p, err := playerObject(sess)
	if err != nil {
		return nil, err
	}
	if positionMS < 0 {
		positionMS = 0
	}
	if err := p.SetProp("PlaybackTime", positionMS); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	return Snapshot(sess)
}

// NowPlaying returns up to limit entries from the Now Playing queue.
// Entries the application fails to hand over are skipped — a queue with
// one unreadable row is still a queue.
func NowPlaying(sess automation.Session, limit int) ([]Track, error) {
	p, err := playerObject(sess)
	if err != nil {
		return nil, err
	}
	list, ok := automation.Child(p, "CurrentSongList")
	if !ok {
		return nil, nil
	}

	count := automation.Int(list, "Count", 0)
	if limit < 0 || limit > count {
		limit = count
	}

	tracks := make([]Track, 0, limit)
	for i := 0; i < limit; i++ {
		song, ok := automation.ChildAt(list, "Item", i)
		if !ok {
			continue
		}
		if t := trackFrom(song); t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks, nil
}

func trackFrom(song automation.Object) *Track {
	if song == nil {
		return nil
	}
	return &Track{
		Title:       automation.String(song, "Title", ""),
		Artist:      automation.String(song, "ArtistName", ""),
		Album:       automation.String(song, "AlbumName", ""),
		AlbumArtist: automation.String(song, "AlbumArtistName", ""),
		Genre:       automation.String(song, "Genre", ""),
		Year:        automation.Int(song, "Year", 0),
		TrackNumber: automation.Int(song, "TrackOrder", 0),
		DurationMS:  automation.Int(song, "SongLength", 0),
		Path:        automation.String(song, "Path", ""),
		Rating:      automation.Int(song, "Rating", 0),
		SongID:      automation.Int(song, "SongID", 0),
	}
}

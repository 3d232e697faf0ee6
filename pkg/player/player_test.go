package player_test

import (
	"errors"
	"testing"

	"github.com/osvalr/mmbridge/pkg/automation/automationtest"
	"github.com/osvalr/mmbridge/pkg/player"
)

// fixture builds a fresh session whose app object exposes a Player with a
// current song and a three-entry queue.
func fixture() (*automationtest.Session, *automationtest.Object) {
	song := func(title string, rating int) *automationtest.Object {
		return &automationtest.Object{Props: map[string]any{
			"Title":      title,
			"ArtistName": "John Coltrane",
			"AlbumName":  "Blue Train",
			"Genre":      "Jazz",
			"SongLength": int32(215000),
			"Rating":     int32(rating),
			"SongID":     int32(41),
		}}
	}
	queue := []*automationtest.Object{
		song("Blue Train", 100),
		song("Moment's Notice", 80),
		song("Locomotion", 60),
	}
	songList := &automationtest.Object{
		Props: map[string]any{"Count": int32(len(queue))},
		CallFn: func(name string, args ...any) (any, error) {
			if name != "Item" {
				return nil, errors.New("unknown method")
			}
			i := args[0].(int)
			if i < 0 || i >= len(queue) {
				return nil, errors.New("index out of range")
			}
			return queue[i], nil
		},
	}
	playerObj := &automationtest.Object{
		Props: map[string]any{
			"isPlaying":        true,
			"isPaused":         false,
			"isShuffle":        false,
			"isRepeat":         true,
			"StopAfterCurrent": false,
			"Volume":           int32(65),
			"PlaybackTime":     int32(42000),
			"CurrentSongIndex": int32(0),
			"CurrentSong":      queue[0],
			"CurrentSongList":  songList,
		},
		CallFn: func(name string, args ...any) (any, error) {
			switch name {
			case "Play", "Pause", "Stop", "Next", "Previous":
				return nil, nil
			}
			return nil, errors.New("unknown method")
		},
	}
	app := &automationtest.Object{Props: map[string]any{"Player": playerObj}}
	return &automationtest.Session{AppObj: app}, playerObj
}

func TestSnapshot(t *testing.T) {
	sess, _ := fixture()
	st, err := player.Snapshot(sess)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !st.Playing || st.Paused {
		t.Error("expected playing, not paused")
	}
	if st.Volume != 65 {
		t.Errorf("Volume = %d, want 65", st.Volume)
	}
	if st.PositionMS != 42000 {
		t.Errorf("PositionMS = %d", st.PositionMS)
	}
	if st.QueueSize != 3 {
		t.Errorf("QueueSize = %d, want 3", st.QueueSize)
	}
	if st.Track == nil || st.Track.Title != "Blue Train" {
		t.Errorf("Track = %+v", st.Track)
	}
	if st.TrackLengthMS != 215000 {
		t.Errorf("TrackLengthMS = %d", st.TrackLengthMS)
	}
}

func TestSnapshotWithoutPlayer(t *testing.T) {
	sess := &automationtest.Session{AppObj: &automationtest.Object{Props: map[string]any{}}}
	if _, err := player.Snapshot(sess); err == nil {
		t.Error("expected error when app exposes no Player")
	}
}

func TestControlToggle(t *testing.T) {
	sess, p := fixture()
	if _, err := player.Control(sess, player.ActionToggle); err != nil {
		t.Fatalf("Control: %v", err)
	}
	// isPlaying is true, so toggle pauses.
	if len(p.CallLog) == 0 || p.CallLog[0] != "Pause" {
		t.Errorf("call log = %v, want Pause first", p.CallLog)
	}
}

func TestControlStopAfterCurrentToggles(t *testing.T) {
	sess, p := fixture()
	if _, err := player.Control(sess, player.ActionStopAfterCurrent); err != nil {
		t.Fatalf("Control: %v", err)
	}
	if len(p.SetLog) != 1 || p.SetLog[0].Name != "StopAfterCurrent" || p.SetLog[0].Value != true {
		t.Errorf("set log = %+v, want StopAfterCurrent=true", p.SetLog)
	}
}

func TestControlShuffleToggles(t *testing.T) {
	sess, p := fixture()
	if _, err := player.Control(sess, player.ActionShuffle); err != nil {
		t.Fatalf("Control: %v", err)
	}
	if len(p.SetLog) != 1 || p.SetLog[0].Name != "isShuffle" || p.SetLog[0].Value != true {
		t.Errorf("set log = %+v, want isShuffle=true", p.SetLog)
	}

	// isRepeat starts true, so the repeat action turns it off.
	sess, p = fixture()
	if _, err := player.Control(sess, player.ActionRepeat); err != nil {
		t.Fatalf("Control: %v", err)
	}
	if len(p.SetLog) != 1 || p.SetLog[0].Name != "isRepeat" || p.SetLog[0].Value != false {
		t.Errorf("set log = %+v, want isRepeat=false", p.SetLog)
	}
}

func TestParseActionRejectsUnknown(t *testing.T) {
	if _, err := player.ParseAction("rewind"); err == nil {
		t.Error("expected error for unknown action")
	}
	if a, err := player.ParseAction("next"); err != nil || a != player.ActionNext {
		t.Errorf("ParseAction(next) = %q, %v", a, err)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	cases := []struct {
		in   int
		want any
	}{
		{150, 100},
		{-5, 0},
		{70, 70},
	}
	for _, tc := range cases {
		sess, p := fixture()
		if _, err := player.SetVolume(sess, tc.in); err != nil {
			t.Fatalf("SetVolume(%d): %v", tc.in, err)
		}
		if len(p.SetLog) != 1 || p.SetLog[0].Value != tc.want {
			t.Errorf("SetVolume(%d) wrote %+v, want %v", tc.in, p.SetLog, tc.want)
		}
	}
}

func TestSeekClampsNegative(t *testing.T) {
	sess, p := fixture()
	if _, err := player.Seek(sess, -100); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if p.SetLog[0].Name != "PlaybackTime" || p.SetLog[0].Value != 0 {
		t.Errorf("set log = %+v, want PlaybackTime=0", p.SetLog)
	}
}

func TestNowPlayingLimit(t *testing.T) {
	sess, _ := fixture()
	tracks, err := player.NowPlaying(sess, 2)
	if err != nil {
		t.Fatalf("NowPlaying: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[1].Title != "Moment's Notice" {
		t.Errorf("tracks[1] = %q", tracks[1].Title)
	}

	// Limits beyond the queue clamp to the queue size.
	tracks, err = player.NowPlaying(sess, 50)
	if err != nil {
		t.Fatalf("NowPlaying: %v", err)
	}
	if len(tracks) != 3 {
		t.Errorf("got %d tracks, want 3", len(tracks))
	}
}

func TestNowPlayingSkipsUnreadableEntries(t *testing.T) {
	sess, p := fixture()
	inner := p.Props["CurrentSongList"].(*automationtest.Object)
	orig := inner.CallFn
	inner.CallFn = func(name string, args ...any) (any, error) {
		if i, ok := args[0].(int); ok && i == 1 {
			return nil, errors.New("COM read failure")
		}
		return orig(name, args...)
	}

	tracks, err := player.NowPlaying(sess, -1)
	if err != nil {
		t.Fatalf("NowPlaying: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2 (middle entry skipped)", len(tracks))
	}
	if tracks[0].Title != "Blue Train" || tracks[1].Title != "Locomotion" {
		t.Errorf("tracks = %v", []string{tracks[0].Title, tracks[1].Title})
	}
}

func TestNowPlayingWithoutQueue(t *testing.T) {
	app := &automationtest.Object{Props: map[string]any{
		"Player": &automationtest.Object{Props: map[string]any{}},
	}}
	sess := &automationtest.Session{AppObj: app}
	tracks, err := player.NowPlaying(sess, 10)
	if err != nil {
		t.Fatalf("NowPlaying: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(tracks))
	}
}

package save

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIM3310/kbbq-idle/internal/mission"
	"github.com/KIM3310/kbbq-idle/internal/upgrade"
)

func sampleData() *Data {
	d := NewData()
	d.PlayerLevel = 7
	d.PrestigeLevel = 1
	d.PrestigePoints = 3
	d.Currency = 1234.5
	d.TotalEarned = 98765.4
	d.LifetimeEarned = 200000
	d.TutorialCompleted = true
	d.StoreTierIndex = 2
	d.UnlockedMenuIDs = []string{"pork_belly", "beef_brisket"}
	d.UpgradeLevels = []upgrade.LevelEntry{{ID: "grill_master", Level: 4}}
	d.DailyMissions = []mission.State{{
		ID: "earncurrency_0", Type: mission.TypeEarnCurrency, Target: 500, Progress: 120, Reward: 100,
	}}
	return d
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	want := sampleData()

	raw, err := Encode(want)
	require.NoError(t, err)

	got := Decode(raw)
	assert.Equal(t, want, got)
}

func TestEncode_ChecksumCoversPersistedBytes(t *testing.T) {
	d := sampleData()
	d.LastOnlineTs = 1780261200

	raw, err := Encode(d)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"last_online_ts":1780261200`)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, checksum(env.Payload), env.Checksum)

	got := Decode(raw)
	assert.Equal(t, int64(1780261200), got.LastOnlineTs)
	assert.Equal(t, 7, got.PlayerLevel)
}

func TestDecode_TamperedPayloadFallsBackToDefaults(t *testing.T) {
	raw, err := Encode(sampleData())
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	// Edit the payload but keep the original checksum.
	env.Payload = bytes.Replace(env.Payload, []byte(`"currency":1234.5`), []byte(`"currency":9999999`), 1)
	tampered, err := json.Marshal(env)
	require.NoError(t, err)

	got := Decode(tampered)
	assert.Equal(t, NewData(), got)
}

func TestDecode_CorruptInputFallsBackToDefaults(t *testing.T) {
	cases := map[string][]byte{
		"empty":         nil,
		"not json":      []byte("sizzle"),
		"empty payload": []byte(`{"payload":null,"checksum":""}`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, NewData(), Decode(raw))
		})
	}
}

func TestDecode_ChecksumCaseInsensitive(t *testing.T) {
	raw, err := Encode(sampleData())
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	env.Checksum = string(bytes.ToUpper([]byte(env.Checksum)))
	upper, err := json.Marshal(env)
	require.NoError(t, err)

	got := Decode(upper)
	assert.Equal(t, 7, got.PlayerLevel)
}

func TestDecode_OldVersionMigrates(t *testing.T) {
	d := sampleData()
	raw, err := Encode(d)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	old := bytes.Replace(env.Payload, []byte(`"version":2`), []byte(`"version":1`), 1)
	env.Payload = old
	env.Checksum = checksum(old)
	raw, err = json.Marshal(env)
	require.NoError(t, err)

	got := Decode(raw)
	assert.Equal(t, CurrentVersion, got.Version)
	assert.Equal(t, 7, got.PlayerLevel)
}

func TestSanitize_ClampsAndFills(t *testing.T) {
	d := &Data{PlayerLevel: -4, Currency: -10, TotalEarned: 500, LifetimeEarned: 100}
	d.Sanitize()

	assert.Equal(t, 1, d.PlayerLevel)
	assert.Zero(t, d.Currency)
	assert.InDelta(t, 500, d.LifetimeEarned, 1e-9)
	assert.InDelta(t, 1, d.SpawnRateMultiplier, 1e-9)
	assert.InDelta(t, 1, d.ServiceRateMultiplier, 1e-9)
	assert.NotNil(t, d.UnlockedMenuIDs)
	assert.NotNil(t, d.UpgradeLevels)
}

func TestResetProgressForPrestige_KeepsPermanentProgress(t *testing.T) {
	d := sampleData()
	d.LoginStreak = 4
	d.ResetProgressForPrestige()

	assert.Equal(t, 1, d.PlayerLevel)
	assert.Zero(t, d.Currency)
	assert.Zero(t, d.TotalEarned)
	assert.Zero(t, d.StoreTierIndex)
	assert.Empty(t, d.UnlockedMenuIDs)
	assert.Empty(t, d.UpgradeLevels)

	assert.Equal(t, 1, d.PrestigeLevel)
	assert.Equal(t, 3, d.PrestigePoints)
	assert.InDelta(t, 200000, d.LifetimeEarned, 1e-9)
	assert.Equal(t, 4, d.LoginStreak)
	assert.True(t, d.TutorialCompleted)
}

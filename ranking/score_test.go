package ranking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newYork = Coordinate{Latitude: 40.0, Longitude: -74.0}

func TestScoreFreshLocalPost(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	loc := newYork
	s := Signals{Location: &loc, CreatedAt: now}

	assert.InDelta(t, 0.7, Score(s, newYork, now), 1e-9)
}

func TestScoreFortyDayOldPost(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := created.Add(40 * 24 * time.Hour)
	loc := newYork
	s := Signals{Location: &loc, CreatedAt: created}

	assert.InDelta(t, 0.5, Score(s, newYork, now), 1e-9)
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(newYork, newYork), 1e-9)
	// 赤道上经度相差 1 度约 111.19 公里
	d := Haversine(Coordinate{0, 0}, Coordinate{0, 1})
	assert.InDelta(t, 111.19, d, 0.05)
}

func TestDistanceTermFloors(t *testing.T) {
	assert.Equal(t, 1.0, DistanceTerm(0))
	assert.InDelta(t, 0.5, DistanceTerm(250), 1e-9)
	assert.Equal(t, 0.0, DistanceTerm(500))
	assert.Equal(t, 0.0, DistanceTerm(12000))
}

func TestEngagementTermClamped(t *testing.T) {
	assert.Equal(t, 0.0, EngagementTerm(0, 0, 0))
	assert.Equal(t, 1.0, EngagementTerm(1_000_000, 0, 0))
	assert.Equal(t, 0.0, EngagementTerm(-5, 0, 0))
}

func TestRecencyTermClockSkew(t *testing.T) {
	assert.Equal(t, 1.0, RecencyTerm(-time.Hour))
	assert.Equal(t, 0.0, RecencyTerm(31*24*time.Hour))
}

func TestMissingLocationTreatedAsOrigin(t *testing.T) {
	now := time.Now()
	withNil := Score(Signals{CreatedAt: now}, Coordinate{}, now)
	assert.InDelta(t, 0.7, withNil, 1e-9)
}

func TestScoreBoundsAndMonotonicity(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	viewer := Coordinate{Latitude: 35.0, Longitude: 139.0}

	prev := 2.0
	for km := 0.0; km <= 800; km += 50 {
		// 沿经线向北移动，每度约 111.19 公里
		loc := Coordinate{Latitude: viewer.Latitude + km/111.19, Longitude: viewer.Longitude}
		score := Score(Signals{Location: &loc, Likes: 3, CreatedAt: now}, viewer, now)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 1.0)
		assert.LessOrEqual(t, score, prev+1e-12, "distance %v", km)
		prev = score
	}

	prev = -1.0
	for engagement := int64(0); engagement < 100000; engagement = engagement*3 + 1 {
		score := Score(Signals{Location: &viewer, Likes: engagement, CreatedAt: now}, viewer, now)
		require.LessOrEqual(t, score, 1.0)
		assert.GreaterOrEqual(t, score, prev-1e-12)
		prev = score
	}

	prev = 2.0
	for days := 0; days <= 45; days += 3 {
		created := now.Add(-time.Duration(days) * 24 * time.Hour)
		score := Score(Signals{Location: &viewer, CreatedAt: created}, viewer, now)
		assert.LessOrEqual(t, score, prev+1e-12)
		prev = score
	}
}

func TestRankIsStableOnTies(t *testing.T) {
	now := time.Now()
	near := newYork
	far := Coordinate{Latitude: -33.9, Longitude: 151.2}

	items := []Signals{
		{Location: &far, CreatedAt: now},
		{Location: &near, CreatedAt: now},
		{Location: &far, CreatedAt: now},
		{Location: &near, CreatedAt: now},
	}
	ranked := Rank(items, newYork, now)
	require.Len(t, ranked, 4)

	order := []int{ranked[0].Index, ranked[1].Index, ranked[2].Index, ranked[3].Index}
	assert.Equal(t, []int{1, 3, 0, 2}, order)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[3].Score)
}

func TestHaversineNearAntipodal(t *testing.T) {
	viewer := Coordinate{Latitude: -86.77999999999997, Longitude: -179}
	post := Coordinate{Latitude: 86.77999999999997, Longitude: 1}

	d := Haversine(viewer, post)
	require.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1)

	now := time.Now()
	score := Score(Signals{Location: &post, CreatedAt: now}, viewer, now)
	require.False(t, math.IsNaN(score))
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestHaversineAntipodalSweep(t *testing.T) {
	now := time.Now()
	for lat := -90.0; lat <= 90.0; lat += 0.37 {
		for lon := -180.0; lon <= 180.0; lon += 7.3 {
			a := Coordinate{Latitude: lat, Longitude: lon}
			b := Coordinate{Latitude: -lat, Longitude: lon + 180}
			d := Haversine(a, b)
			require.False(t, math.IsNaN(d), "%v %v", a, b)
			require.LessOrEqual(t, d, math.Pi*EarthRadiusKm+1e-6)

			score := Score(Signals{Location: &b, CreatedAt: now}, a, now)
			require.False(t, math.IsNaN(score), "%v %v", a, b)
		}
	}
}

func TestDistanceTermNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, DistanceTerm(math.NaN()))
	assert.Equal(t, 0.0, DistanceTerm(math.Inf(1)))
}

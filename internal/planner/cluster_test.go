package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-engine/internal/types"
)

func TestClusterRegionsSeparatesDistantPlaces(t *testing.T) {
	// Goa coast plus Hampi, roughly 280km apart.
	places := append(goaPlaces(),
		tp("Virupaksha Temple", types.PlaceTypeLandmark, 15.3350, 76.4600, 90))

	regions := clusterRegions(places, 100)
	require.Len(t, regions, 2)
	assert.Len(t, regions[0].Places, 4, "regions sort largest-first")
	assert.Len(t, regions[1].Places, 1)
	assert.Equal(t, "Virupaksha Temple", regions[1].Places[0].Name)
}

func TestClusterRegionsSingleLinkChains(t *testing.T) {
	// Each neighbor is within the radius of the previous one even though
	// the endpoints are further apart than the radius.
	places := []types.PlaceKnowledge{
		tp("A", types.PlaceTypeLandmark, 15.0, 74.0, 60),
		tp("B", types.PlaceTypeLandmark, 15.7, 74.0, 60), // ~78km from A
		tp("C", types.PlaceTypeLandmark, 16.4, 74.0, 60), // ~78km from B, ~156km from A
	}
	regions := clusterRegions(places, 100)
	require.Len(t, regions, 1)
	assert.Len(t, regions[0].Places, 3)
}

func TestFitRegionsToDaysMerges(t *testing.T) {
	regions := clusterRegions(append(goaPlaces(),
		tp("Virupaksha Temple", types.PlaceTypeLandmark, 15.3350, 76.4600, 90)), 100)
	require.Len(t, regions, 2)

	fitted := fitRegionsToDays(regions, 1)
	require.Len(t, fitted, 1)
	assert.Len(t, fitted[0].Places, 5)
}

func TestFitRegionsToDaysSplits(t *testing.T) {
	regions := clusterRegions(goaPlaces(), 100)
	require.Len(t, regions, 1)

	fitted := fitRegionsToDays(regions, 3)
	require.Len(t, fitted, 3)

	total := 0
	for _, r := range fitted {
		assert.NotEmpty(t, r.Places)
		total += len(r.Places)
	}
	assert.Equal(t, 4, total, "splitting never loses or duplicates places")
}

func TestFitRegionsToDaysCannotSplitSingletons(t *testing.T) {
	regions := []Region{{
		Places:   []types.PlaceKnowledge{tp("A", types.PlaceTypeBeach, 15.5, 73.7, 60)},
		Centroid: types.Coordinates{Lat: 15.5, Lng: 73.7},
	}}
	fitted := fitRegionsToDays(regions, 3)
	assert.Len(t, fitted, 1, "a single place cannot fill more days")
}

func TestSplitRegionKeepsAllPlaces(t *testing.T) {
	region := clusterRegions(goaPlaces(), 100)[0]
	a, b := splitRegion(region)

	assert.Equal(t, len(region.Places), len(a.Places)+len(b.Places))
	assert.NotEmpty(t, a.Places)
	assert.NotEmpty(t, b.Places)
}

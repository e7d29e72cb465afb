package csvload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorro/reelstats/catalog"
)

const sampleCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,"As her father nears the end of his life, a filmmaker stages his death."
s2,TV Show,Blood & Water,,"Ama Qamata, Khosi Ngema","South Africa","September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas","After crossing paths at a party, a teen sets out to prove a theory."
s3,Documentary,Bad Kind,,,,"September 24, 2021",2021,TV-MA,1 Season,,
s4,Movie,No Year,,,,"September 24, 2021",not-a-year,TV-MA,90 min,,
`

func TestLoad(t *testing.T) {
	records, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	// s3 has an unknown kind, s4 a non-numeric year; both are skipped
	require.Len(t, records, 2)

	movie := records[0]
	assert.Equal(t, "s1", movie.ID)
	assert.Equal(t, catalog.KindMovie, movie.Kind)
	assert.Equal(t, "Dick Johnson Is Dead", movie.Title)
	require.True(t, movie.HasDirector())
	assert.Equal(t, "Kirsten Johnson", movie.DirectorName())
	assert.Equal(t, 2020, movie.ReleaseYear)
	assert.Equal(t, "90 min", movie.Duration)

	show := records[1]
	assert.Equal(t, catalog.KindSeries, show.Kind)
	// empty director column means absent, not empty string
	assert.False(t, show.HasDirector())
	assert.Equal(t, "Ama Qamata, Khosi Ngema", show.Cast)

	added, ok := show.AddedAt()
	require.True(t, ok)
	assert.Equal(t, 2021, added.Year())
}

func TestLoadHeaderOnly(t *testing.T) {
	records, err := Load(strings.NewReader("show_id,type,title,release_year\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	_, err := Load(strings.NewReader("show_id,title,release_year\ns1,Some Title,2020\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")
}

func TestLoadEmptyInput(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	require.Error(t, err)
}

func TestLoadRaggedRow(t *testing.T) {
	input := "show_id,type,title,release_year\n" +
		"s1,Movie,Fine,2020\n" +
		"s2,Movie\n" + // too short, title missing
		"s3,Movie,Also Fine,2021\n"

	records, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "s1", records[0].ID)
	assert.Equal(t, "s3", records[1].ID)
}

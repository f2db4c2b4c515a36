package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const usaCSV = `country,age,gender,year,population
usa,0,1,2010,2000
usa,0,2,2010,1900
usa,1,1,2010,2100
usa,0,1,2011,2050
usa,0,2,2011,1950
`

const chnCSV = `age,gender,year,population
0,1,2010,8000
0,2,2010,7000
5,1,2012,9000
`

func writeCountryFile(t *testing.T, dir, country, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileBaseName(country)+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestDataset(t *testing.T) *Dataset {
	t.Helper()

	dir := t.TempDir()
	writeCountryFile(t, dir, "usa", usaCSV)
	writeCountryFile(t, dir, "chn", chnCSV)
	return NewDataset(dir, nil)
}

func sampleTable() Table {
	return Table{
		{Country: "usa", Year: 2009, Age: 0, Gender: Male, Population: 10},
		{Country: "usa", Year: 2010, Age: 0, Gender: Male, Population: 20},
		{Country: "usa", Year: 2010, Age: 0, Gender: Female, Population: 30},
		{Country: "usa", Year: 2010, Age: 1, Gender: Male, Population: 40},
		{Country: "chn", Year: 2010, Age: 0, Gender: Female, Population: 50},
		{Country: "chn", Year: 2011, Age: 2, Gender: Male, Population: 60},
		{Country: "chn", Year: 2012, Age: 90, Gender: Female, Population: 70},
	}
}

func removeAll(ds *Dataset) error {
	for _, c := range ds.Countries {
		f, err := ds.Locate(c)
		if err != nil {
			continue
		}
		if err := os.Remove(f.Path); err != nil {
			return err
		}
	}
	return nil
}

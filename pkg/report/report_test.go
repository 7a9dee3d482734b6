package report

import (
	"testing"

	"github.com/ska-sa/rfireport/pkg/baseline"
	"github.com/ska-sa/rfireport/pkg/dataset"
)

// testObservation builds a small three-antenna observation with a slew
// scan in the middle and a handful of flagged samples.
func testObservation(t *testing.T) *dataset.Dataset {
	t.Helper()

	products := [][2]string{
		{"m000h", "m000h"},
		{"m000h", "m001h"},
		{"m000h", "m002h"},
		{"m001h", "m002h"},
		{"m000v", "m001v"},
		{"m000v", "m002v"},
		{"m001v", "m002v"},
	}
	scans := []dataset.Scan{
		{StartDump: 0, EndDump: 2, Type: "track", Target: "J1939-6342"},
		{StartDump: 2, EndDump: 3, Type: "slew", Target: "J0408-6545"},
		{StartDump: 3, EndDump: 4, Type: "track", Target: "J0408-6545"},
	}

	flags := make([]uint8, 4*3*7)
	flags[(0*3+0)*7+1] = dataset.FlagCalRFI
	flags[(1*3+2)*7+4] = dataset.FlagIngestRFI

	ds, err := dataset.New("1630212001_sdp_l0",
		map[string]string{
			"description":      "RFI test observation",
			"sb_id_code":       "20210829-0004",
			"proposal_id":      "SCI-20210829-XX-01",
			"capture_block_id": "1630212001",
		},
		[]float64{1630212001, 1630212009, 1630212017, 1630212025},
		[]float64{856e6, 857e6, 858e6},
		products, scans, flags)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return ds
}

func testTable() baseline.Table {
	return baseline.Table{"m000m001": 100, "m000m002": 50, "m001m002": 75}
}

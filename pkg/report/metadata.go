package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ska-sa/rfireport/pkg/dataset"
)

// Reduction product identification constants.
const (
	ProductTypeName = "MeerKATReductionProduct"
	ReductionName   = "RFIReport"
)

// ProductType identifies the reduction product in the metadata sidecar.
type ProductType struct {
	ProductTypeName string `json:"ProductTypeName"`
	ReductionName   string `json:"ReductionName"`
}

// Metadata is the metadata.json sidecar written next to the reports.
// The dataset-derived fields are copied verbatim from the observation
// parameters.
type Metadata struct {
	ProductType         ProductType `json:"ProductType"`
	Description         string      `json:"Description"`
	ScheduleBlockIdCode string      `json:"ScheduleBlockIdCode"`
	ProposalId          string      `json:"ProposalId"`
	CaptureBlockId      string      `json:"CaptureBlockId"`
}

// NewMetadata builds the sidecar record from the dataset's observation
// parameters.
func NewMetadata(ds *dataset.Dataset) Metadata {
	params := ds.ObsParams()
	return Metadata{
		ProductType: ProductType{
			ProductTypeName: ProductTypeName,
			ReductionName:   ReductionName,
		},
		Description:         params["description"],
		ScheduleBlockIdCode: params["sb_id_code"],
		ProposalId:          params["proposal_id"],
		CaptureBlockId:      params["capture_block_id"],
	}
}

// WriteMetadata writes the metadata sidecar.
func WriteMetadata(path string, ds *dataset.Dataset) error {
	if err := atomicWriteJSON(path, NewMetadata(ds)); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// atomicWriteJSON marshals v with indentation and writes it via a
// rename, so readers never observe a partial file.
func atomicWriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

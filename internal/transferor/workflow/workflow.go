// Package workflow holds the normalized model of a single processing request:
// which datasets it reads, which campaigns own them, and the block inventory
// from which data placement chunks are planned. A Workflow is a mutable value
// object with single-writer discipline; distinct workflows share no state and
// may be planned concurrently.
package workflow

import (
	goslices "golang.org/x/exp/slices"

	"github.com/gridwm/transferor/internal/common/planerrors"
	"github.com/gridwm/transferor/internal/common/slices"
	"github.com/gridwm/transferor/internal/transferor/request"
)

// DatasetType is the role a dataset plays within a workflow.
type DatasetType string

const (
	DatasetPrimary   DatasetType = "primary"
	DatasetSecondary DatasetType = "secondary"
	DatasetParent    DatasetType = "parent"
)

// DatasetRecord associates one dataset with its role and owning campaign.
type DatasetRecord struct {
	Type     DatasetType
	Name     string
	Campaign string
}

// Workflow represents one processing request and the data it needs placed
// before jobs can be created for it.
type Workflow struct {
	name string
	doc  *request.Document

	inputDataset    string
	parentDataset   string
	pileupDatasets  map[string]bool
	campaigns       map[string]bool
	dataCampaignMap []DatasetRecord

	// block name -> size in bytes, for the primary and parent datasets
	primaryBlocks map[string]int64
	parentBlocks  map[string]int64
	// primary block -> the parent blocks it depends on
	childToParentBlocks map[string]BlockSet
	// pileups are not resolved into blocks, only their total size is kept
	secondarySummaries map[string]int64
}

// New builds a Workflow from a decoded request document. The data/campaign
// map and the derived input fields are populated here; the block inventory
// starts empty and is filled in by the caller once catalog facts are known.
func New(name string, doc *request.Document) (*Workflow, error) {
	wf := &Workflow{
		name:                name,
		doc:                 doc,
		pileupDatasets:      map[string]bool{},
		campaigns:           map[string]bool{},
		childToParentBlocks: map[string]BlockSet{},
		secondarySummaries:  map[string]int64{},
	}
	if err := wf.parseCampaignMap(); err != nil {
		return nil, err
	}
	wf.deriveInputs()
	return wf, nil
}

// parseCampaignMap builds the association between input data, data type and
// campaign name, one record per distinct dataset referenced by any task. The
// task-level campaign wins over the top-level one, and every non-empty task
// campaign is accumulated even for tasks that declare no data.
func (wf *Workflow) parseCampaignMap() error {
	tasks, err := wf.doc.Tasks()
	if err != nil {
		return err
	}
	topCampaign := wf.doc.String("Campaign")
	index := map[string]int{}
	add := func(datasetType DatasetType, dataset string, campaign string) {
		if dataset == "" {
			return
		}
		record := DatasetRecord{Type: datasetType, Name: dataset, Campaign: campaign}
		if i, ok := index[dataset]; ok {
			wf.dataCampaignMap[i] = record
		} else {
			index[dataset] = len(wf.dataCampaignMap)
			wf.dataCampaignMap = append(wf.dataCampaignMap, record)
		}
	}
	for _, task := range tasks {
		campaign := task.Campaign
		if campaign == "" {
			campaign = topCampaign
		}
		add(DatasetPrimary, task.InputDataset, campaign)
		add(DatasetSecondary, task.MCPileup, campaign)
		add(DatasetSecondary, task.DataPileup, campaign)
		if task.Campaign != "" {
			wf.campaigns[task.Campaign] = true
		}
	}
	return nil
}

// deriveInputs projects the primary and secondary datasets out of the
// data/campaign map. The map is the source of truth; these fields are never
// edited directly.
func (wf *Workflow) deriveInputs() {
	for _, record := range wf.dataCampaignMap {
		switch record.Type {
		case DatasetPrimary:
			wf.inputDataset = record.Name
		case DatasetSecondary:
			wf.pileupDatasets[record.Name] = true
		}
	}
}

// Name returns this request's name.
func (wf *Workflow) Name() string {
	return wf.name
}

// RequestType returns the request type for this workflow.
func (wf *Workflow) RequestType() string {
	return wf.doc.String("RequestType")
}

// DbsUrl returns the DbsUrl defined in this request.
func (wf *Workflow) DbsUrl() string {
	return wf.doc.String("DbsUrl")
}

// InputDataset returns this request's primary input dataset name.
func (wf *Workflow) InputDataset() string {
	return wf.inputDataset
}

// ParentDataset returns the parent dataset name, or "" if none was set.
func (wf *Workflow) ParentDataset() string {
	return wf.parentDataset
}

// PileupDatasets returns this request's secondary dataset names.
func (wf *Workflow) PileupDatasets() map[string]bool {
	return wf.pileupDatasets
}

// Campaigns returns the set of campaign names used within this request.
func (wf *Workflow) Campaigns() map[string]bool {
	return wf.campaigns
}

// DataCampaignMap returns the map of campaign, dataset and dataset type.
func (wf *Workflow) DataCampaignMap() []DatasetRecord {
	return wf.dataCampaignMap
}

// SiteList returns the SiteWhitelist minus the SiteBlacklist, sorted.
func (wf *Workflow) SiteList() []string {
	sites := slices.Unique(slices.Subtract(wf.doc.Strings("SiteWhitelist"), wf.doc.Strings("SiteBlacklist")))
	goslices.Sort(sites)
	return sites
}

// RunList returns the RunWhitelist minus the RunBlacklist, sorted.
func (wf *Workflow) RunList() []int {
	runs := slices.Unique(slices.Subtract(wf.doc.Ints("RunWhitelist"), wf.doc.Ints("RunBlacklist")))
	goslices.Sort(runs)
	return runs
}

// LumiMask returns the run to lumi-range mask for this request, or nil.
func (wf *Workflow) LumiMask() map[string][][]int {
	return wf.doc.LumiMask()
}

// BlockWhitelist returns the blocks white listed by this workflow.
func (wf *Workflow) BlockWhitelist() []string {
	return wf.doc.Strings("BlockWhitelist")
}

// BlockBlacklist returns the blocks black listed by this workflow.
func (wf *Workflow) BlockBlacklist() []string {
	return wf.doc.Strings("BlockBlacklist")
}

// HasParents reports whether this request asks for parent data to be placed
// alongside its input.
func (wf *Workflow) HasParents() bool {
	if wf.inputDataset == "" {
		return false
	}
	return wf.doc.Bool("IncludeParents")
}

// SetParentDataset records the parent dataset name and appends a parent-typed
// record to the data/campaign map, inheriting the campaign of the primary
// record. It is an error to call this before an input dataset is known.
func (wf *Workflow) SetParentDataset(parent string) error {
	for _, record := range wf.dataCampaignMap {
		if record.Type == DatasetPrimary {
			wf.parentDataset = parent
			wf.dataCampaignMap = append(wf.dataCampaignMap, DatasetRecord{
				Type:     DatasetParent,
				Name:     parent,
				Campaign: record.Campaign,
			})
			return nil
		}
	}
	return &planerrors.ErrInvalidState{
		Request: wf.name,
		Message: "cannot set a parent dataset before an input dataset is known",
	}
}

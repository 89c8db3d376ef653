package granuleindex

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
)

// BeginIngestJobMessage is sent on a channel to start an ingest job
const BeginIngestJobMessage = "start"

// AbortIngestJobMessage is sent on a channel to stop an in-progress job
const AbortIngestJobMessage = "stop"

const statusTimeFormat = "Mon Jan _2 15:04:05 2006"

// Describer resolves the metadata and footprint of a granule
type Describer interface {
	Describe(h5Href string) (*model.GranuleResult, error)
}

type jobStats struct {
	NumberAddedOrUpdated int
	NumberSkipped        int
	NumberError          int
	StartTime            time.Time
	EndTime              time.Time
	CanceledByUser       bool
}

func (stats *jobStats) String() string {
	return fmt.Sprintf(`
		Start:	%v
		End:	%v
		Canceled: %v
		#Added:		%v
		#Skipped:	%v
		#Error:		%v
		`,
		stats.StartTime.Format(statusTimeFormat),
		stats.EndTime.Format(statusTimeFormat),
		stats.CanceledByUser,
		stats.NumberAddedOrUpdated,
		stats.NumberSkipped,
		stats.NumberError)
}

// Importer manages the state of an ingest job: a list of granule hrefs, one per line,
// is described by a pool of workers and upserted into the index
type Importer struct {
	listHref   string
	describer  Describer
	store      Store
	workers    int
	statusChan chan chan string
	Context    util.LogContext
}

// NewImporter initializes a new importer
func NewImporter(listHref string, describer Describer, store Store, workers int) *Importer {
	if workers < 1 {
		workers = 1
	}
	return &Importer{
		listHref:   listHref,
		describer:  describer,
		store:      store,
		workers:    workers,
		statusChan: make(chan chan string, 10),
		Context:    &util.BasicLogContext{},
	}
}

// ImportWhile runs an import every maxTimeBetweenJobs, or when BeginIngestJobMessage arrives.
// It blocks until messageChan is closed and any in-progress job completes.
func (imp *Importer) ImportWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration) {
	util.LogInfo(imp.Context, fmt.Sprintf("Job loop started with frequency %v", maxTimeBetweenJobs))

	previousStatus := "\tNone"
	scheduleTimer := time.NewTimer(maxTimeBetweenJobs)
	nextScheduledStartTime := time.Now().Add(maxTimeBetweenJobs)

	for {
		startJob := false
		select {
		case <-scheduleTimer.C:
			util.LogInfo(imp.Context, "Maximum time between jobs elapsed.")
			startJob = true
		case msg, ok := <-messageChan:
			if !ok {
				return
			}
			if msg == BeginIngestJobMessage {
				util.LogInfo(imp.Context, "User requested job start.")
				startJob = true
			}
		case respChan := <-imp.statusChan:
			select {
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format(statusTimeFormat),
				nextScheduledStartTime.Format(statusTimeFormat),
				previousStatus):
			default:
			}
		}

		if startJob {
			summary, err := imp.Import(messageChan)
			if err != nil {
				util.LogSimpleErr(imp.Context, "Ingest job failed", err)
				previousStatus = "\tFailed: " + err.Error()
			} else {
				previousStatus = summary
			}

			if !scheduleTimer.Stop() {
				select {
				case <-scheduleTimer.C:
				default:
				}
			}
			scheduleTimer.Reset(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}
	}
}

// GetStatus is a thread safe way to get information about the import operation
func (imp *Importer) GetStatus() string {
	responseChan := make(chan string, 1)
	imp.statusChan <- responseChan
	return <-responseChan
}

// Import reads the href list and indexes every granule on it. A granule that fails to
// resolve is counted and logged; the job carries on with the rest.
func (imp *Importer) Import(messageChan <-chan string) (string, error) {
	reader, err := util.OpenHref(imp.listHref)
	if err != nil {
		return "", fmt.Errorf("could not open the granule list %s: %w", imp.listHref, err)
	}
	defer reader.Close()
	return imp.Ingest(reader, messageChan), nil
}

type outcome struct {
	href     string
	affected int64
	err      error
}

// Ingest indexes the granule hrefs read from reader, one per line. Blank lines and lines
// starting with # are ignored.
func (imp *Importer) Ingest(reader io.Reader, cancelChan <-chan string) string {
	stats := jobStats{StartTime: time.Now()}

	hrefs := make(chan string, imp.workers)
	outcomes := make(chan outcome, imp.workers)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < imp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for href := range hrefs {
				outcomes <- imp.index(href)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	go func() {
		defer close(hrefs)
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case hrefs <- line:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			util.LogSimpleErr(imp.Context, "Error reading granule list", err)
		}
	}()

	aborted := false
	for result := range outcomes {
		switch {
		case result.err != nil:
			stats.NumberError++
			util.LogSimpleErr(imp.Context, "Error indexing "+result.href, result.err)
		case result.affected == 0:
			stats.NumberSkipped++
		default:
			stats.NumberAddedOrUpdated++
		}

		if !aborted && drainMessages(cancelChan) {
			util.LogInfo(imp.Context, "Ingest job canceled by user.")
			stats.CanceledByUser = true
			aborted = true
			close(done)
		}
		drainStatusChannel(imp.statusChan, &stats)
	}

	stats.EndTime = time.Now()
	util.LogAudit(imp.Context, util.LogAuditInput{
		Actor:    "importer",
		Action:   "ingest",
		Actee:    imp.listHref,
		Message:  "Ingest complete: " + stats.String(),
		Severity: util.INFO,
	})
	return stats.String()
}

func (imp *Importer) index(href string) outcome {
	result, err := imp.describer.Describe(href)
	if err != nil {
		return outcome{href: href, err: err}
	}
	metadataHref := ""
	for _, asset := range result.Assets {
		if asset.MediaType == model.XML {
			metadataHref = asset.Href
		}
	}
	row, err := rowFromResult(*result, href, metadataHref)
	if err != nil {
		return outcome{href: href, err: err}
	}
	affected, err := imp.store.Upsert(row)
	return outcome{href: href, affected: affected, err: err}
}

// drainMessages reads every pending message looking for an abort; others are discarded.
// A closed channel counts as an abort.
func drainMessages(messageChan <-chan string) (abortRequested bool) {
	for {
		select {
		case msg, ok := <-messageChan:
			if !ok {
				return true
			}
			abortRequested = abortRequested || (msg == AbortIngestJobMessage)
		default:
			return
		}
	}
}

// drainStatusChannel answers every pending status request
func drainStatusChannel(statusChan <-chan chan string, stats *jobStats) {
	for {
		select {
		case resp := <-statusChan:
			if resp != nil {
				select {
				case resp <- fmt.Sprintf("%v\nIn progress\n%v", time.Now().Format(statusTimeFormat), stats.String()):
				default:
				}
			}
		default:
			return
		}
	}
}

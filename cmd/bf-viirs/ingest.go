package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-viirs/granuleindex"
	"github.com/venicegeo/bf-viirs/granuleindex/db"
	"github.com/venicegeo/bf-viirs/util"
	cli "gopkg.in/urfave/cli.v1"
)

const ingestFrequencyEnv = "BF_VIIRS_INGEST_FREQUENCY"
const defaultIngestFrequency = 24 * time.Hour

var getStoreFunc = func(ctx util.LogContext) (granuleindex.Store, func() error, error) {
	store, err := db.NewStore(ctx, getDbConnectionFunc)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// ingestAction indexes a granule list once, or keeps doing so on a schedule with --schedule
func ingestAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("Expected exactly one LISTFILE argument", 2)
	}
	logContext := &util.BasicLogContext{}
	opts, err := converterOptions(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	store, closeStore, err := getStoreFunc(logContext)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Could not open the granule index: %v", err), 1)
	}
	defer closeStore()

	importer := granuleindex.NewImporter(c.Args().First(), newConverterFunc(opts, logContext), store, c.Int("workers"))
	if !c.Bool("schedule") {
		summary, err := importer.Import(nil)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Fprintln(stdout, summary)
		return nil
	}

	messageChan := make(chan string, 5)
	go importer.ImportWhile(messageChan, getTimerDuration())

	router := mux.NewRouter()
	router.HandleFunc("/ingest/", func(resp http.ResponseWriter, req *http.Request) {
		handleImportStatus(importer, resp, req)
	})
	router.HandleFunc("/ingest/start", func(resp http.ResponseWriter, req *http.Request) {
		handleSendMessage(importer, messageChan, granuleindex.BeginIngestJobMessage, resp, req)
	})
	router.HandleFunc("/ingest/cancel", func(resp http.ResponseWriter, req *http.Request) {
		handleSendMessage(importer, messageChan, granuleindex.AbortIngestJobMessage, resp, req)
	})
	launchServerFunc(util.GetPortStr(), router)
	return nil
}

//handleImportStatus requests the status from the importer and writes it out.
func handleImportStatus(imp *granuleindex.Importer, writer http.ResponseWriter, req *http.Request) {
	fmt.Fprintln(writer, imp.GetStatus())
}

//handleSendMessage sends a start or cancel message to the importer and returns the new status to the user.
func handleSendMessage(imp *granuleindex.Importer, messageChan chan<- string, message string, writer http.ResponseWriter, req *http.Request) {
	select {
	case messageChan <- message:
		fmt.Fprintf(writer, "Request %q submitted.\n", message)
	default:
		fmt.Fprintf(writer, "Error submitting request %q.\n", message)
	}
	fmt.Fprintln(writer, imp.GetStatus())
}

func getTimerDuration() time.Duration {
	duration, _ := time.ParseDuration(os.Getenv(ingestFrequencyEnv))
	if duration < time.Minute {
		util.LogInfo(&util.BasicLogContext{}, fmt.Sprintf("Ingest frequency of %v is too small. Using default %v.", duration, defaultIngestFrequency))
		duration = defaultIngestFrequency
	}
	return duration
}

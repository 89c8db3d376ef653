// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-viirs/granuleindex"
	"github.com/venicegeo/bf-viirs/util"
	cli "gopkg.in/urfave/cli.v1"
)

func createRouter(store granuleindex.Store) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	granuleindex.Route(router, store)
	return router
}

func serveAction(*cli.Context) error {
	logContext := &(util.BasicLogContext{})

	store, closeStore, err := getStoreFunc(logContext)
	if err != nil {
		util.LogSimpleErr(logContext, "Failed to open the granule index: ", err)
		return cli.NewExitError(err.Error(), 1)
	}
	defer closeStore()

	launchServerFunc(util.GetPortStr(), createRouter(store))
	return nil
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}

// Command vtpostd runs the embedded tile post-processing server: it loads
// a YAML pipeline configuration, builds the configured datasource and
// processor chain, and serves z/x/y tile requests over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/tileforge/vtpost/internal/admin"
	"github.com/tileforge/vtpost/internal/config"
	"github.com/tileforge/vtpost/internal/datasource"
	"github.com/tileforge/vtpost/pkg/server"
	"github.com/tileforge/vtpost/pkg/vtpost"
)

func main() {
	configPath := flag.String("config", "vtpost.yaml", "path to the pipeline configuration file")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, addr string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	tree, err := config.Parse(data)
	if err != nil {
		return err
	}

	processors, err := buildPipeline(tree)
	if err != nil {
		return err
	}

	fetchTree, ok := tree.Subtree("fetch")
	if !ok {
		log.Fatal("vtpostd: missing required fetch configuration")
	}
	fetcher, err := buildFetcher(fetchTree)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Fetcher:    fetcher,
		Processors: map[string][]vtpost.Processor{"": processors},
	})

	log.Printf("vtpostd listening on %s", addr)
	return http.ListenAndServe(addr, srv)
}

// buildPipeline constructs the ordered processor chain under the `pipeline`
// key, a list of stage names ("union", "admin") each resolved against a
// same-named subtree of configuration.
func buildPipeline(tree config.Tree) ([]vtpost.Processor, error) {
	stages, _ := tree.StringSlice("pipeline")
	var processors []vtpost.Processor

	for _, stage := range stages {
		stageTree, _ := tree.Subtree(stage)
		switch stage {
		case "union":
			p, err := vtpost.NewUnionizer(stageTree)
			if err != nil {
				return nil, err
			}
			processors = append(processors, p)
		case "admin":
			ds, err := buildAuxiliaryDatasource(stageTree)
			if err != nil {
				return nil, err
			}
			p, err := vtpost.NewAdminizer(stageTree, ds)
			if err != nil {
				return nil, err
			}
			processors = append(processors, p)
		}
	}
	return processors, nil
}

func buildAuxiliaryDatasource(tree config.Tree) (admin.AuxiliaryDatasource, error) {
	dsTree, ok := tree.Subtree("datasource")
	if !ok {
		return nil, &admin.DatasourceError{Op: "construct", Err: errors.New("missing datasource configuration")}
	}
	params := dsTree.Strings()
	return datasource.New(params["kind"], datasource.Params(params))
}

func buildFetcher(tree config.Tree) (server.Fetcher, error) {
	kind := tree.StringOr("kind", "http")
	switch kind {
	case "s3":
		return server.NewS3Fetcher(context.Background(),
			tree.StringOr("bucket", ""), tree.StringOr("key_pattern", "{z}/{x}/{y}.mvt"))
	default:
		return &server.HTTPFetcher{URLTemplate: tree.StringOr("url_template", "")}, nil
	}
}

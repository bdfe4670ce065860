// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/marketplacecatalog"

	mpaws "github.com/mpctl/mpctl/internal/aws"
	"github.com/mpctl/mpctl/internal/log"
)

const (
	// DefaultCatalog is the only catalog AWS Marketplace exposes.
	DefaultCatalog = "AWSMarketplace"
)

// DefaultEntityTypes lists the entity types enumerated when none are given.
var DefaultEntityTypes = []string{"DataProduct"}

// ListEntitiesAPI is the slice of the Marketplace Catalog client the
// enumerator needs.
type ListEntitiesAPI interface {
	ListEntities(ctx context.Context, params *marketplacecatalog.ListEntitiesInput,
		optFns ...func(*marketplacecatalog.Options)) (*marketplacecatalog.ListEntitiesOutput, error)
}

// EntitySummary is the display form of a catalog entity.
type EntitySummary struct {
	Name         string `json:"name" yaml:"name"`
	ID           string `json:"id" yaml:"id"`
	Type         string `json:"type" yaml:"type"`
	ARN          string `json:"arn" yaml:"arn"`
	Visibility   string `json:"visibility" yaml:"visibility"`
	LastModified string `json:"last_modified" yaml:"last_modified"`
}

// Row returns the summary keyed by its output attribute names.
func (e EntitySummary) Row() map[string]interface{} {
	return map[string]interface{}{
		"name":          e.Name,
		"id":            e.ID,
		"type":          e.Type,
		"arn":           e.ARN,
		"visibility":    e.Visibility,
		"last_modified": e.LastModified,
	}
}

// TypeResult is the outcome of listing one entity type. Err is set when the
// listing failed and the type was skipped.
type TypeResult struct {
	EntityType string
	Entities   []EntitySummary
	Err        error
}

// Skipped reports whether the type was skipped.
func (r TypeResult) Skipped() bool {
	return r.Err != nil
}

// SkipReason is the notice printed for a skipped type. Authorization and
// validation failures read as "unauthorized"; anything else carries the
// provider's message.
func (r TypeResult) SkipReason() string {
	if r.Err == nil {
		return ""
	}
	if mpaws.IsKind(r.Err, mpaws.KindAccessDenied, mpaws.KindValidation) {
		return "unauthorized"
	}
	return mpaws.ErrorMessage(r.Err)
}

// Enumerator lists catalog entities one entity type at a time.
type Enumerator struct {
	client  ListEntitiesAPI
	catalog string
}

// NewEnumerator returns an Enumerator for catalogName. An empty name selects
// DefaultCatalog.
func NewEnumerator(client ListEntitiesAPI, catalogName string) *Enumerator {
	if catalogName == "" {
		catalogName = DefaultCatalog
	}
	return &Enumerator{client: client, catalog: catalogName}
}

// Catalog returns the catalog being enumerated.
func (e *Enumerator) Catalog() string {
	return e.catalog
}

// ListType issues exactly one ListEntities call for entityType and returns
// the first page of summaries. Provider errors are returned in the result,
// never as a Go error, so callers always move on to the next type.
func (e *Enumerator) ListType(ctx context.Context, entityType string) TypeResult {
	res := TypeResult{EntityType: entityType}

	out, err := e.client.ListEntities(ctx, &marketplacecatalog.ListEntitiesInput{
		Catalog:    awsv2.String(e.catalog),
		EntityType: awsv2.String(entityType),
	})
	if err != nil {
		log.Debugf("list entities failed: type=%s kind=%s err=%v", entityType, mpaws.Classify(err), err)
		res.Err = err
		return res
	}

	for _, s := range out.EntitySummaryList {
		log.Tracef("entity: id=%s name=%s", awsv2.ToString(s.EntityId), awsv2.ToString(s.Name))
		res.Entities = append(res.Entities, EntitySummary{
			Name:         awsv2.ToString(s.Name),
			ID:           awsv2.ToString(s.EntityId),
			Type:         awsv2.ToString(s.EntityType),
			ARN:          awsv2.ToString(s.EntityArn),
			Visibility:   awsv2.ToString(s.Visibility),
			LastModified: awsv2.ToString(s.LastModifiedDate),
		})
	}
	log.Debugf("list entities: type=%s count=%d", entityType, len(res.Entities))

	return res
}

// Enumerate lists every type in entityTypes in order, one call per type,
// regardless of earlier failures. A cancelled context stops the walk.
func (e *Enumerator) Enumerate(ctx context.Context, entityTypes []string) ([]TypeResult, error) {
	results := make([]TypeResult, 0, len(entityTypes))
	for _, t := range entityTypes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, e.ListType(ctx, t))
	}
	return results, nil
}

// PrintOptions controls the text rendering of enumeration results.
type PrintOptions struct {
	ShowIDs bool
	Done    bool
}

// Print writes results in the classic text form:
//
//	Enumerating DataProduct
//	 name-1
//	 name-2
//
// Skipped types print " skipping, <reason>". If w is nil, os.Stdout is used.
func Print(w io.Writer, results []TypeResult, opts PrintOptions) {
	if w == nil {
		w = os.Stdout
	}

	for _, r := range results {
		fmt.Fprintf(w, "Enumerating %s\n", r.EntityType)
		if r.Skipped() {
			fmt.Fprintf(w, " skipping, %s\n", r.SkipReason())
			continue
		}
		for _, s := range r.Entities {
			if opts.ShowIDs {
				fmt.Fprintf(w, " %s: %s\n", s.ID, s.Name)
				continue
			}
			fmt.Fprintf(w, " %s\n", s.Name)
		}
	}

	if opts.Done {
		fmt.Fprintln(w, "Done.")
	}
}

// Rows flattens the entities of every non-skipped result into output rows.
func Rows(results []TypeResult) []map[string]interface{} {
	var rows []map[string]interface{}
	for _, r := range results {
		for _, s := range r.Entities {
			rows = append(rows, s.Row())
		}
	}
	return rows
}

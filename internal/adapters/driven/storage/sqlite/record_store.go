package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driven"
)

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

// fileLink mirrors domain.FileLink for the JSON files column.
type fileLink struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Checksum string `json:"checksum"`
}

// Upsert stores or updates records by Zenodo link. All records go through
// one transaction so a harvest either lands completely or not at all.
func (s *recordStore) Upsert(ctx context.Context, records []domain.Record) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records
			(zenodo_link, oai_id, sort_key, date, title, version, description,
			 authors, contributors, creators, doi, related_dois, github_link,
			 communities, rights, source, subjects, type, files, enriched,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(zenodo_link) DO UPDATE SET
			oai_id = excluded.oai_id,
			sort_key = excluded.sort_key,
			date = excluded.date,
			title = excluded.title,
			version = excluded.version,
			description = excluded.description,
			authors = excluded.authors,
			contributors = excluded.contributors,
			creators = excluded.creators,
			doi = excluded.doi,
			related_dois = excluded.related_dois,
			github_link = excluded.github_link,
			communities = excluded.communities,
			rights = excluded.rights,
			source = excluded.source,
			subjects = excluded.subjects,
			type = excluded.type,
			files = excluded.files,
			enriched = excluded.enriched,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range records {
		if rec.ZenodoLink == "" {
			return fmt.Errorf("%w: record %q has no zenodo link", domain.ErrInvalidInput, rec.ID)
		}

		filesJSON, err := marshalFiles(rec.Files)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx,
			rec.ZenodoLink, rec.ID, rec.SortKey(),
			rec.Date, rec.Title, rec.Version, rec.Description,
			marshalStrings(rec.Authors), marshalStrings(rec.Contributors), marshalStrings(rec.Creators),
			rec.DOI, marshalStrings(rec.RelatedDOIs), nullString(rec.GitHubLink),
			marshalStrings(rec.Communities), rec.Rights, rec.Source,
			marshalStrings(rec.Subjects), rec.Type,
			filesJSON, boolToInt(rec.Enriched),
			now, now); err != nil {
			return fmt.Errorf("saving record %s: %w", rec.ZenodoLink, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a record by its Zenodo link.
func (s *recordStore) Get(ctx context.Context, zenodoLink string) (*domain.Record, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT zenodo_link, oai_id, date, title, version, description,
		       authors, contributors, creators, doi, related_dois, github_link,
		       communities, rights, source, subjects, type, files, enriched
		FROM records WHERE zenodo_link = ?
	`, zenodoLink)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

// List returns all records ordered by numeric record id.
func (s *recordStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT zenodo_link, oai_id, date, title, version, description,
		       authors, contributors, creators, doi, related_dois, github_link,
		       communities, rights, source, subjects, type, files, enriched
		FROM records ORDER BY sort_key, zenodo_link
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// scanRecord scans one record row via the given Scan function, so it works
// for both *sql.Row and *sql.Rows.
func scanRecord(scan func(dest ...any) error) (*domain.Record, error) {
	var rec domain.Record
	var date, title, version, description sql.NullString
	var authors, contributors, creators, relatedDOIs, communities, subjects sql.NullString
	var doi, githubLink, rights, source, recType, files sql.NullString
	var enriched int

	err := scan(&rec.ZenodoLink, &rec.ID, &date, &title, &version, &description,
		&authors, &contributors, &creators, &doi, &relatedDOIs, &githubLink,
		&communities, &rights, &source, &subjects, &recType, &files, &enriched)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	rec.Date = date.String
	rec.Title = title.String
	rec.Version = version.String
	rec.Description = description.String
	rec.DOI = doi.String
	rec.GitHubLink = githubLink.String
	rec.Rights = rights.String
	rec.Source = source.String
	rec.Type = recType.String
	rec.Enriched = enriched == 1

	var uerr error
	if rec.Authors, uerr = unmarshalStrings(authors); uerr != nil {
		return nil, uerr
	}
	if rec.Contributors, uerr = unmarshalStrings(contributors); uerr != nil {
		return nil, uerr
	}
	if rec.Creators, uerr = unmarshalStrings(creators); uerr != nil {
		return nil, uerr
	}
	if rec.RelatedDOIs, uerr = unmarshalStrings(relatedDOIs); uerr != nil {
		return nil, uerr
	}
	if rec.Communities, uerr = unmarshalStrings(communities); uerr != nil {
		return nil, uerr
	}
	if rec.Subjects, uerr = unmarshalStrings(subjects); uerr != nil {
		return nil, uerr
	}

	if files.Valid && files.String != "" {
		var links []fileLink
		if err := json.Unmarshal([]byte(files.String), &links); err != nil {
			return nil, fmt.Errorf("unmarshaling files: %w", err)
		}
		for _, l := range links {
			rec.Files = append(rec.Files, domain.FileLink{URL: l.URL, Type: l.Type, Checksum: l.Checksum})
		}
	}

	return &rec, nil
}

// marshalStrings encodes a string list as JSON, nil lists as SQL NULL.
func marshalStrings(values []string) interface{} {
	if len(values) == 0 {
		return nil
	}
	b, _ := json.Marshal(values)
	return string(b)
}

// unmarshalStrings decodes a JSON string list column.
func unmarshalStrings(col sql.NullString) ([]string, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(col.String), &values); err != nil {
		return nil, fmt.Errorf("unmarshaling string list: %w", err)
	}
	return values, nil
}

// marshalFiles encodes file links as JSON, empty lists as SQL NULL.
func marshalFiles(files []domain.FileLink) (interface{}, error) {
	if len(files) == 0 {
		return nil, nil
	}
	links := make([]fileLink, len(files))
	for i, f := range files {
		links[i] = fileLink{URL: f.URL, Type: f.Type, Checksum: f.Checksum}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshalling files: %w", err)
	}
	return string(b), nil
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

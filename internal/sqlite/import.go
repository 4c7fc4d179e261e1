package sqlite

import (
	"encoding/base64"
	"fmt"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// ImportCrawlerDB translates a crawler-produced database into this store.
// The foreign schema uses string node ids and stores page images as raw
// thumbnail blobs; blobs become inline data URLs, missing titles become the
// placeholder, and nodes colliding on URL (exact match) are skipped and
// remapped to the existing id with no metadata overwrite. Unlike merge, a
// single unreadable database fails the whole call.
func (s *Store) ImportCrawlerDB(path string) (types.ImportStats, error) {
	var stats types.ImportStats

	src, err := openSource(path)
	if err != nil {
		return stats, err
	}
	defer src.Close()

	urls, err := s.NodeURLs()
	if err != nil {
		return stats, err
	}

	rows, err := src.Query(
		`SELECT id, url, title, favicon, thumbnail,
			position_x, position_y, position_z, is_alive
		 FROM nodes`,
	)
	if err != nil {
		return stats, fmt.Errorf("reading crawler nodes: %w", err)
	}

	idMap := make(map[string]int64)
	for rows.Next() {
		var foreignID, url string
		var title, favicon *string
		var thumbnail []byte
		var x, y, z float64
		var isAlive int
		if err := rows.Scan(&foreignID, &url, &title, &favicon, &thumbnail, &x, &y, &z, &isAlive); err != nil {
			rows.Close()
			return stats, fmt.Errorf("scanning crawler node: %w", err)
		}

		if existingID, ok := urls[url]; ok {
			idMap[foreignID] = existingID
			stats.NodesSkipped++
			continue
		}

		n := types.Node{
			URL:       url,
			Title:     types.DefaultTitle,
			Favicon:   favicon,
			PositionX: x,
			PositionY: y,
			PositionZ: z,
			IsAlive:   isAlive == 1,
		}
		if title != nil && *title != "" {
			n.Title = *title
		}
		if len(thumbnail) > 0 {
			dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(thumbnail)
			n.Screenshot = &dataURL
		}
		crawled := nowTimestamp()
		n.LastCrawled = &crawled

		newID, created, err := s.InsertNodeIfAbsent(n)
		if err != nil {
			rows.Close()
			return stats, err
		}
		idMap[foreignID] = newID
		urls[url] = newID
		if created {
			stats.NodesImported++
		} else {
			stats.NodesSkipped++
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return stats, fmt.Errorf("iterating crawler nodes: %w", err)
	}
	rows.Close()

	// Edges with a null target never leave the query.
	edgeRows, err := src.Query("SELECT source_id, target_id FROM edges WHERE target_id IS NOT NULL")
	if err != nil {
		return stats, fmt.Errorf("reading crawler edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var foreignSource, foreignTarget string
		if err := edgeRows.Scan(&foreignSource, &foreignTarget); err != nil {
			return stats, fmt.Errorf("scanning crawler edge: %w", err)
		}

		sourceID, okSource := idMap[foreignSource]
		targetID, okTarget := idMap[foreignTarget]
		if !okSource || !okTarget {
			continue
		}

		created, err := s.CreateEdge(sourceID, targetID)
		if err != nil {
			return stats, err
		}
		if created {
			stats.EdgesImported++
		}
	}
	return stats, edgeRows.Err()
}

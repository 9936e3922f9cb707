package stage

import "context"

const chunkChangesStage = "chunk-changes"

// buildChunks partitions records in input order into groups whose cumulative
// size stays within limit. A file larger than the limit becomes a singleton
// chunk; files are atomic and never split.
func buildChunks(records []Record, limit int64) []Chunk {
	var out []Chunk
	var cur Chunk
	for _, r := range records {
		if len(cur.Paths) > 0 && cur.TotalSize+r.Size > limit {
			out = append(out, cur)
			cur = Chunk{}
		}
		cur.Paths = append(cur.Paths, r.Path)
		cur.TotalSize += r.Size
	}
	if len(cur.Paths) > 0 {
		out = append(out, cur)
	}
	return out
}

func chunkChangesRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	if terminalClean(in) {
		return in, nil
	}
	out := in
	out.Meta.Chunks = buildChunks(in.Records, cfg(in).Limits.ChunkBytes)
	return out, nil
}

func init() { Register(chunkChangesStage, chunkChangesRunner) }

package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE workflows (
				id UUID PRIMARY KEY,
				uid VARCHAR(64) NOT NULL UNIQUE,
				slug VARCHAR(512) NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				items JSONB NOT NULL DEFAULT '[]',
				meta JSONB NOT NULL DEFAULT '{}',
				user_id VARCHAR(255) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_workflows_user_id ON workflows(user_id);
			CREATE INDEX idx_workflows_updated_at ON workflows(updated_at);
		`,
	}
}

package database

const schema = `
CREATE TABLE IF NOT EXISTS images (
    id TEXT PRIMARY KEY,
    storage_key TEXT NOT NULL,
    url TEXT NOT NULL UNIQUE,
    parent_entity_id TEXT NOT NULL,
    image_type TEXT NOT NULL,
    file_size INTEGER NOT NULL DEFAULT 0,
    width INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL DEFAULT 0,
    uploaded DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_images_parent ON images (parent_entity_id);
CREATE INDEX IF NOT EXISTS idx_images_url ON images (url);
`

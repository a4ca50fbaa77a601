package db

// SchemaSQL defines the tables a publish writes to.
const SchemaSQL = `
    -- ==========================================================================
    -- RADICAL TABLE (one row per Kangxi radical, keyed radical:<number>)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS radical SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS number ON radical TYPE int ASSERT $value >= 1 AND $value <= 214;
    DEFINE FIELD IF NOT EXISTS kangxi_char ON radical TYPE string;
    DEFINE FIELD IF NOT EXISTS kangxi_code ON radical TYPE string;
    DEFINE FIELD IF NOT EXISTS intermediary_char ON radical TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS intermediary_code ON radical TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS supplement_chars ON radical TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS supplement_codes ON radical TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS policy ON radical TYPE string;
    DEFINE FIELD IF NOT EXISTS run_id ON radical TYPE string;
    DEFINE FIELD IF NOT EXISTS published ON radical TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS radical_number ON radical FIELDS number UNIQUE;
    DEFINE INDEX IF NOT EXISTS radical_intermediary ON radical FIELDS intermediary_code;
    DEFINE INDEX IF NOT EXISTS radical_run ON radical FIELDS run_id;

    -- ==========================================================================
    -- PUBLISH RUN TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS publish_run SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS run_id ON publish_run TYPE string;
    DEFINE FIELD IF NOT EXISTS policy ON publish_run TYPE string;
    DEFINE FIELD IF NOT EXISTS supplement_candidates ON publish_run TYPE string;
    DEFINE FIELD IF NOT EXISTS duplicates ON publish_run TYPE string;
    DEFINE FIELD IF NOT EXISTS resolved ON publish_run TYPE int;
    DEFINE FIELD IF NOT EXISTS unresolved ON publish_run TYPE int;
    DEFINE FIELD IF NOT EXISTS created ON publish_run TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS publish_run_id ON publish_run FIELDS run_id UNIQUE;
    DEFINE INDEX IF NOT EXISTS publish_run_created ON publish_run FIELDS created;
`

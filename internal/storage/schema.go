package storage

const schema = `
-- Axes are the named bipolar spectrums a user calibrates. Deleting an axis
-- orphans its calibrations; there is no cascade.
CREATE TABLE IF NOT EXISTS axes (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id     TEXT NOT NULL,
    left_label  TEXT NOT NULL,
    right_label TEXT NOT NULL,
    emoji       TEXT NOT NULL DEFAULT '',
    color_start TEXT NOT NULL DEFAULT '',
    color_end   TEXT NOT NULL DEFAULT '',
    created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_axes_user ON axes(user_id);

-- Calibrations are append-only events; rows are never updated or deleted.
-- The current value of an axis is the row with the latest client_timestamp.
CREATE TABLE IF NOT EXISTS calibrations (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id          TEXT NOT NULL,
    axis_id          INTEGER NOT NULL,
    value            INTEGER NOT NULL CHECK(value BETWEEN 0 AND 100),
    calibration_type TEXT NOT NULL CHECK(calibration_type IN ('morning','midday','evening','manual')),
    client_timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calibrations_axis ON calibrations(user_id, axis_id, client_timestamp);

-- One ritual cycle per user per local calendar day. The unique constraint
-- is what makes concurrent morning starts converge on a single row.
CREATE TABLE IF NOT EXISTS daily_cycles (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id              TEXT NOT NULL,
    cycle_date           TEXT NOT NULL, -- YYYY-MM-DD in the user's local day
    morning_completed_at DATETIME,
    midday_completed_at  DATETIME,
    evening_completed_at DATETIME,
    intended_action      TEXT NOT NULL DEFAULT '',
    decisive_prompt      TEXT NOT NULL DEFAULT '',
    action_taken         TEXT NOT NULL DEFAULT '',
    observed_effect      TEXT NOT NULL DEFAULT '',
    reflection           TEXT NOT NULL DEFAULT '',
    is_complete          INTEGER NOT NULL DEFAULT 0,

    UNIQUE(user_id, cycle_date)
);

-- Flashcards carry their review schedule inline. The id is a content hash,
-- so identical cards collapse to one row per user.
CREATE TABLE IF NOT EXISTS flashcards (
    id               TEXT NOT NULL,
    user_id          TEXT NOT NULL,
    front            TEXT NOT NULL,
    back             TEXT NOT NULL,
    deck             TEXT NOT NULL DEFAULT '',
    ease_factor      REAL NOT NULL DEFAULT 2.5,
    interval_days    INTEGER NOT NULL DEFAULT 0 CHECK(interval_days >= 0),
    repetitions      INTEGER NOT NULL DEFAULT 0 CHECK(repetitions >= 0),
    next_review_date TEXT NOT NULL, -- YYYY-MM-DD
    created_at       DATETIME NOT NULL,

    PRIMARY KEY(user_id, id)
);

CREATE INDEX IF NOT EXISTS idx_flashcards_due ON flashcards(user_id, next_review_date);
`

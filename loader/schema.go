package loader

import (
    "database/sql"
    "fmt"
    "log"
)

// schemaDDL drops and recreates every table the pipeline fills. The load is
// a full rebuild, not a migration.
const schemaDDL = `
DROP TABLE IF EXISTS programs_dropin CASCADE;
DROP TABLE IF EXISTS programs_registered CASCADE;
DROP TABLE IF EXISTS facilities CASCADE;
DROP TABLE IF EXISTS locations CASCADE;
DROP TABLE IF EXISTS wards CASCADE;

-- Main locations table (merged from GeoJSON + CSV)
CREATE TABLE locations (
    id SERIAL PRIMARY KEY,
    location_id VARCHAR(50) UNIQUE NOT NULL,

    -- From the facilities GeoJSON
    asset_id INTEGER,
    asset_name VARCHAR(255),
    facility_type VARCHAR(100),
    amenities TEXT,
    address TEXT,
    phone VARCHAR(50),
    url TEXT,
    geom GEOMETRY(Point, 4326),

    -- From the locations CSV
    parent_location_id VARCHAR(50),
    location_name VARCHAR(255),
    location_type VARCHAR(100),
    accessibility TEXT,
    intersection VARCHAR(255),
    ttc_information TEXT,
    district VARCHAR(100),
    description TEXT,

    -- Address components
    street_no VARCHAR(20),
    street_no_suffix VARCHAR(10),
    street_name VARCHAR(100),
    street_type VARCHAR(50),
    street_direction VARCHAR(10),
    postal_code VARCHAR(10)
);

-- Drop-in programs
CREATE TABLE programs_dropin (
    id SERIAL PRIMARY KEY,
    location_id VARCHAR(50) REFERENCES locations(location_id),
    course_id VARCHAR(100),
    course_title VARCHAR(255),
    section VARCHAR(100),
    age_min INT,
    age_max INT,
    date_range VARCHAR(100),
    start_hour INT,
    start_minute INT,
    end_hour INT,
    end_minute INT,
    first_date DATE,
    last_date DATE,
    day_of_week VARCHAR(50),
    start_time TIME,
    end_time TIME,
    weekday INT  -- 0=Monday, 6=Sunday
);

-- Registered programs
CREATE TABLE programs_registered (
    id SERIAL PRIMARY KEY,
    location_id VARCHAR(50) REFERENCES locations(location_id),
    course_id VARCHAR(100),
    section VARCHAR(100),
    activity_title VARCHAR(255),
    course_title VARCHAR(255),
    days_of_week VARCHAR(100),
    from_to VARCHAR(100),
    start_hour INT,
    start_minute INT,
    end_hour INT,
    end_minute INT,
    activity_url TEXT,
    min_age INT,
    max_age INT,
    program_category VARCHAR(100),
    registration_date DATE,
    status_info TEXT
);

-- Facilities
CREATE TABLE facilities (
    id SERIAL PRIMARY KEY,
    facility_id VARCHAR(50),
    location_id VARCHAR(50) REFERENCES locations(location_id),
    facility_type VARCHAR(255),
    permit VARCHAR(100),
    facility_type_code VARCHAR(100),
    facility_rating VARCHAR(100),
    asset_name VARCHAR(255)
);

-- Wards
CREATE TABLE wards (
    id SERIAL PRIMARY KEY,
    area_id BIGINT,
    area_name VARCHAR(255),
    area_short_code VARCHAR(10),
    area_desc TEXT,
    geom GEOMETRY(MultiPolygon, 4326)
);

CREATE INDEX idx_locations_location_id ON locations(location_id);
CREATE INDEX idx_locations_district ON locations(district);
CREATE INDEX idx_locations_geom ON locations USING GIST(geom);
CREATE INDEX idx_dropin_location_id ON programs_dropin(location_id);
CREATE INDEX idx_dropin_weekday ON programs_dropin(weekday);
CREATE INDEX idx_registered_location_id ON programs_registered(location_id);
CREATE INDEX idx_facilities_location_id ON facilities(location_id);
CREATE INDEX idx_wards_geom ON wards USING GIST(geom);
`

// ResetSchema drops and recreates the full schema, spatial columns and
// indexes included.
func ResetSchema(db *sql.DB) error {
    if _, err := db.Exec(schemaDDL); err != nil {
        return fmt.Errorf("failed to create schema: %v", err)
    }
    log.Printf("Schema created")
    return nil
}

package sqlinline

const QCreateSchema = `--sql 066ff8b5-00de-482c-a626-7384d2154e48
create table if not exists fast_state (
  id smallint primary key check (id = 1),
  extra_minutes numeric not null default 0 check (extra_minutes >= 0),
  updated_at timestamptz not null default now()
);

create table if not exists donor_totals (
  donor_name text primary key,
  total_donation numeric(14, 2) not null default 0 check (total_donation >= 0),
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);

create index if not exists donor_totals_ranking_idx
  on donor_totals (total_donation desc, donor_name);

create table if not exists processed_payments (
  payment_id text primary key,
  donor_name text not null,
  amount numeric(14, 2) not null,
  processed_at timestamptz not null default now()
);
`

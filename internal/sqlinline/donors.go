package sqlinline

const QAddDonorTotal = `--sql ad44603e-746b-4348-b64d-0cc0b20c1fda
insert into donor_totals(donor_name, total_donation, created_at, updated_at)
values ($1::text, $2::numeric, now(), now())
on conflict (donor_name) do update
set total_donation = donor_totals.total_donation + excluded.total_donation,
    updated_at = now()
returning total_donation::text;
`

const QListDonorRanking = `--sql 34638e28-1a14-42a9-b014-a00ed176e50d
select donor_name, total_donation::text
from donor_totals
order by total_donation desc, donor_name collate "C" asc;
`

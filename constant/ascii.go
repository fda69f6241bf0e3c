package constant

// AsciiArtLogo is the application's banner shown in the root help.
const AsciiArtLogo = `
     _       _         _
  __| | ___ | |_ _ __ | | __ _ _   _
 / _  |/ _ \| __| '_ \| |/ _  | | | |
| (_| | (_) | |_| |_) | | (_| | |_| |
 \__,_|\___/ \__| .__/|_|\__,_|\__, |
                |_|            |___/`
